package main

import (
	"github.com/gin-gonic/gin"

	"github.com/yuanthio/life-admin-assistant-sub000/connection"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	connection.StartServer()
}
