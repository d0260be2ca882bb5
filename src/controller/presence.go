package controller

import (
	"net/http"

	"github.com/manusiele/therapyflow-sub000/src/models"
	"github.com/manusiele/therapyflow-sub000/src/schemas"
	"github.com/manusiele/therapyflow-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PresenceController struct {
	Service *service.PresenceService
	Logger  *logrus.Logger
}

func NewPresenceController(svc *service.PresenceService, logger *logrus.Logger) *PresenceController {
	return &PresenceController{
		Service: svc,
		Logger:  logger,
	}
}

// @Summary Update presence
// @Description Upserts a participant's online/offline state for a session
// @Tags presence
// @Accept json
// @Produce json
// @Param UpdatePresenceRequest body schemas.UpdatePresenceRequest true "Update Presence Request"
// @Success 200 {object} schemas.UpdatePresenceResponse
// @Failure 400 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /presence [post]
func (pc *PresenceController) UpdatePresence(ctx *gin.Context) {
	var req schemas.UpdatePresenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBindError(ctx, pc.Logger, err, "/presence")
		return
	}

	row, err := pc.Service.UpdatePresence(
		ctx.Request.Context(),
		req.SessionID,
		req.UserID,
		models.UserType(req.UserType),
		*req.IsOnline,
	)
	if err != nil {
		sendError(ctx, pc.Logger, err, "/presence")
		return
	}

	ctx.JSON(http.StatusOK, schemas.UpdatePresenceResponse{
		Message:   "Presence updated",
		SessionID: row.SessionID,
		UserID:    row.UserID,
		IsOnline:  row.IsOnline,
	})
}

// @Summary Heartbeat
// @Description Refreshes a participant's last-seen timestamp
// @Tags presence
// @Accept json
// @Produce json
// @Param HeartbeatRequest body schemas.HeartbeatRequest true "Heartbeat Request"
// @Success 204
// @Failure 400 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /presence/heartbeat [post]
func (pc *PresenceController) Heartbeat(ctx *gin.Context) {
	var req schemas.HeartbeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBindError(ctx, pc.Logger, err, "/presence/heartbeat")
		return
	}

	if err := pc.Service.Heartbeat(ctx.Request.Context(), req.SessionID, req.UserID); err != nil {
		sendError(ctx, pc.Logger, err, "/presence/heartbeat")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Gate status
// @Description Evaluates the participant gate for a session
// @Tags presence
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} schemas.GateStatusResponse
// @Failure 404 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /sessions/{sessionId}/gate [get]
func (pc *PresenceController) GateStatus(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	decision, err := pc.Service.CheckParticipants(ctx.Request.Context(), sessionID)
	if err != nil {
		sendError(ctx, pc.Logger, err, "/sessions/"+sessionID+"/gate")
		return
	}

	ctx.JSON(http.StatusOK, schemas.GateStatusResponse{
		SessionID: sessionID,
		Decision:  *decision,
	})
}
