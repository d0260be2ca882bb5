package utils

import (
	"github.com/manusiele/therapyflow-sub000/logger"
	"github.com/manusiele/therapyflow-sub000/src/schemas"

	"github.com/gin-gonic/gin"
)

func SendError(ctx *gin.Context, status int, title string, detail string, errType string, instance string) {
	errorResp := schemas.ErrorResponse{
		Type:     errType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
	ctx.JSON(status, errorResp)
	logger.Logger.Error(title + ": " + detail)
}
