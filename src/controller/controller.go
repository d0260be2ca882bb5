package controller

import (
	"errors"

	"github.com/manusiele/therapyflow-sub000/src/schemas"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// sendError writes an error response. Service-layer *schemas.ErrorResponse
// values keep their status and RFC 7807 body; anything else becomes a 500.
func sendError(ctx *gin.Context, log *logrus.Logger, err error, instance string) {
	var apiErr *schemas.ErrorResponse
	if errors.As(err, &apiErr) {
		ctx.JSON(apiErr.Status, apiErr)
		log.Error(apiErr.Title + ": " + apiErr.Detail)
		return
	}

	resp := schemas.NewInternalError(err.Error(), instance)
	ctx.JSON(resp.Status, resp)
	log.Error("Internal Server Error: " + err.Error())
}

// sendBindError writes a 400 for malformed request bodies.
func sendBindError(ctx *gin.Context, log *logrus.Logger, err error, instance string) {
	resp := schemas.NewBadRequestError("Invalid JSON format: "+err.Error(), instance)
	ctx.JSON(resp.Status, resp)
	log.Error("Bad Request: " + err.Error())
}
