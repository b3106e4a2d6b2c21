package auth

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/yuanthio/life-admin-assistant-sub000/dto"
	"github.com/yuanthio/life-admin-assistant-sub000/middleware"
	"github.com/yuanthio/life-admin-assistant-sub000/model"
	"github.com/yuanthio/life-admin-assistant-sub000/services"
)

func TokenController(router *gin.Engine, firestoreClient *firestore.Client) {
	router.POST("/auth/refresh", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		RefreshTokens(c, firestoreClient)
	})
	router.POST("/auth/signout", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Signout(c, firestoreClient)
	})
}

// RefreshTokens rotates the token pair. The presented refresh token must
// match the stored bcrypt hash and must not be revoked.
func RefreshTokens(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)
	presented := c.MustGet("refreshToken").(string)

	ctx := context.Background()
	doc, err := firestoreClient.Collection("refreshTokens").Doc(userId).Get(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}

	var stored model.TokenResponse
	if err := doc.DataTo(&stored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse token data"})
		return
	}

	if stored.Revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token has been revoked"})
		return
	}
	if err := services.CompareRefreshToken(stored.RefreshToken, presented); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token mismatch"})
		return
	}

	userDoc, err := services.GetUserDataByUserid(ctx, firestoreClient, userId)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	var user model.User
	if err := userDoc.DataTo(&user); err != nil {
		c.JSON(500, gin.H{"error": "Failed to parse user data"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}
	refreshToken, err := services.CreateRefreshToken(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}
	hashedRefreshToken, err := services.HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash refresh token"})
		return
	}

	now := time.Now()
	tokenData := model.TokenResponse{
		UserID:       user.UserID,
		RefreshToken: hashedRefreshToken,
		CreatedAt:    now.Unix(),
		Revoked:      false,
		ExpiresIn:    int64((7 * 24 * time.Hour).Seconds()),
	}
	if _, err := firestoreClient.Collection("refreshTokens").Doc(user.UserID).Set(ctx, tokenData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenPairResponse{
		UserID:       user.UserID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         user.Role,
	})
}

func Signout(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	ctx := context.Background()
	_, err := firestoreClient.Collection("refreshTokens").Doc(userId).Update(ctx, []firestore.Update{
		{Path: "Revoked", Value: true},
	})
	if err != nil {
		// Nothing stored means nothing to revoke.
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
