package controller

import (
	"net/http"

	"github.com/manusiele/therapyflow-sub000/src/schemas"
	"github.com/manusiele/therapyflow-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SMSController struct {
	Service *service.SMSService
	Logger  *logrus.Logger
}

func NewSMSController(svc *service.SMSService, logger *logrus.Logger) *SMSController {
	return &SMSController{
		Service: svc,
		Logger:  logger,
	}
}

// @Summary Send an SMS notification
// @Description Validates the recipient and dispatches the message; without provider credentials delivery is simulated
// @Tags notifications
// @Accept json
// @Produce json
// @Param SendSMSRequest body schemas.SendSMSRequest true "Send SMS Request"
// @Success 200 {object} schemas.SendSMSResponse
// @Failure 400 {object} schemas.ErrorResponse
// @Failure 502 {object} schemas.ErrorResponse
// @Router /api/notifications/sms [post]
func (sc *SMSController) SendSMS(ctx *gin.Context) {
	instance := "/api/notifications/sms"

	var req schemas.SendSMSRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBindError(ctx, sc.Logger, err, instance)
		return
	}

	resp, err := sc.Service.Send(ctx.Request.Context(), req.To, req.Message)
	if err != nil {
		sendError(ctx, sc.Logger, err, instance)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
