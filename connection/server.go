package connection

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yuanthio/life-admin-assistant-sub000/controller/auth"
	"github.com/yuanthio/life-admin-assistant-sub000/controller/reminder"
	"github.com/yuanthio/life-admin-assistant-sub000/controller/task"
	"github.com/yuanthio/life-admin-assistant-sub000/controller/template"
	"github.com/yuanthio/life-admin-assistant-sub000/controller/user"
	"github.com/yuanthio/life-admin-assistant-sub000/services"
)

func StartServer() {
	router := gin.Default()

	fb, err := FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}

	engine := services.NewReminderEngine(
		services.NewFirestoreTaskStore(fb),
		services.NewFirestoreReminderStore(fb),
		services.SystemClock(),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	auth.SignInController(router, fb)
	auth.SignUpController(router, fb)
	auth.TokenController(router, fb)
	user.UserController(router, fb)
	template.TemplateController(router, fb, engine)
	task.TaskController(router, fb, engine)
	reminder.ReminderController(router, fb, engine)

	router.Run()
}
