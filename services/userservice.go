package services

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
)

func UserExist(ctx context.Context, firestoreClient *firestore.Client, email string) (bool, error) {
	usersCollection := firestoreClient.Collection("Users")
	query := usersCollection.Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return false, err
	}

	return len(docs) > 0, nil
}

func GetUserData(ctx context.Context, firestoreClient *firestore.Client, email string) (*firestore.DocumentSnapshot, error) {
	usersCollection := firestoreClient.Collection("Users")

	query := usersCollection.Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, errors.New("user not found")
	}

	return docs[0], nil
}

func GetUserDataByUserid(ctx context.Context, firestoreClient *firestore.Client, userID string) (*firestore.DocumentSnapshot, error) {
	doc, err := firestoreClient.Collection("Users").Doc(userID).Get(ctx)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !doc.Exists() {
		return nil, errors.New("user not found")
	}
	return doc, nil
}
