package router

import (
	"net/http"

	"github.com/manusiele/therapyflow-sub000/src/config"
	"github.com/manusiele/therapyflow-sub000/src/controller"
	"github.com/manusiele/therapyflow-sub000/src/middleware"
	"github.com/manusiele/therapyflow-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates the gin engine with all routes wired.
func NewRouter(cfg *config.GlobalConfig, svc *service.Service, log *logrus.Logger) *gin.Engine {
	router := gin.Default()

	sessionController := controller.NewSessionController(svc.Sessions, log)
	presenceController := controller.NewPresenceController(svc.Presence, log)
	roomController := controller.NewRoomController(svc.Rooms, log)
	smsController := controller.NewSMSController(svc.SMS, log)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Provider-facing endpoints. The call widget hits these directly.
	router.POST("/api/daily/create-room", roomController.CreateRoom)
	router.POST("/api/notifications/sms", smsController.SendSMS)

	authed := router.Group("/", middleware.UserAuthRequiredMiddleware(cfg))
	{
		authed.POST("/sessions", sessionController.CreateSession)
		authed.GET("/sessions/:sessionId", sessionController.GetSession)
		authed.PUT("/sessions/:sessionId/status", sessionController.UpdateSessionStatus)
		authed.GET("/sessions/:sessionId/gate", presenceController.GateStatus)

		authed.POST("/presence", presenceController.UpdatePresence)
		authed.POST("/presence/heartbeat", presenceController.Heartbeat)
	}

	return router
}
