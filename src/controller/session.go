package controller

import (
	"log/slog"
	"net/http"

	"github.com/manusiele/therapyflow-sub000/src/models"
	"github.com/manusiele/therapyflow-sub000/src/schemas"
	"github.com/manusiele/therapyflow-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SessionController struct {
	Service *service.SessionService
	Logger  *logrus.Logger
}

func NewSessionController(svc *service.SessionService, logger *logrus.Logger) *SessionController {
	return &SessionController{
		Service: svc,
		Logger:  logger,
	}
}

// @Summary Schedule a session
// @Description Creates a new therapy session for a therapist/patient pair
// @Tags sessions
// @Accept json
// @Produce json
// @Param CreateSessionRequest body schemas.CreateSessionRequest true "Create Session Request"
// @Success 201 {object} schemas.SessionResponse
// @Failure 400 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /sessions [post]
func (sc *SessionController) CreateSession(ctx *gin.Context) {
	var req schemas.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBindError(ctx, sc.Logger, err, "/sessions")
		return
	}

	session, err := sc.Service.CreateSession(ctx.Request.Context(), req.TherapistID, req.PatientID, req.ScheduledAt)
	if err != nil {
		sendError(ctx, sc.Logger, err, "/sessions")
		return
	}

	ctx.JSON(http.StatusCreated, schemas.SessionResponse{
		Session:  session,
		RoomName: service.RoomNameForSession(session),
	})
}

// @Summary Get a session
// @Description Returns the session record and its resolved video room name
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} schemas.SessionResponse
// @Failure 404 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /sessions/{sessionId} [get]
func (sc *SessionController) GetSession(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")

	session, err := sc.Service.GetSession(ctx.Request.Context(), sessionID)
	if err != nil {
		sendError(ctx, sc.Logger, err, "/sessions/"+sessionID)
		return
	}

	ctx.JSON(http.StatusOK, schemas.SessionResponse{
		Session:  session,
		RoomName: service.RoomNameForSession(session),
	})
}

// @Summary Update session status
// @Description Moves a session to IN_PROGRESS, COMPLETED or CANCELLED
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param UpdateSessionStatusRequest body schemas.UpdateSessionStatusRequest true "Update Session Status Request"
// @Success 200 {object} schemas.UpdateSessionStatusResponse
// @Failure 400 {object} schemas.ErrorResponse
// @Failure 404 {object} schemas.ErrorResponse
// @Failure 409 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /sessions/{sessionId}/status [put]
func (sc *SessionController) UpdateSessionStatus(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")
	instance := "/sessions/" + sessionID + "/status"

	var req schemas.UpdateSessionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBindError(ctx, sc.Logger, err, instance)
		return
	}

	var err error
	switch models.SessionStatus(req.Status) {
	case models.StatusInProgress:
		err = sc.Service.StartSession(ctx.Request.Context(), sessionID)
	case models.StatusCompleted:
		err = sc.Service.SetSessionStatusToCompleted(ctx.Request.Context(), sessionID)
	case models.StatusCancelled:
		err = sc.Service.SetSessionStatusToCancelled(ctx.Request.Context(), sessionID)
	default:
		sendError(ctx, sc.Logger, schemas.NewBadRequestError("status must be IN_PROGRESS, COMPLETED or CANCELLED", instance), instance)
		return
	}

	if err != nil {
		sendError(ctx, sc.Logger, err, instance)
		return
	}

	slog.Info("Session status updated successfully",
		"session_id", sessionID,
		"status", req.Status)

	ctx.JSON(http.StatusOK, schemas.UpdateSessionStatusResponse{
		Message:   "Session status updated successfully",
		SessionID: sessionID,
		Status:    req.Status,
	})
}
