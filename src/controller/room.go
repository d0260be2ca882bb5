package controller

import (
	"net/http"

	"github.com/manusiele/therapyflow-sub000/src/schemas"
	"github.com/manusiele/therapyflow-sub000/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoomController struct {
	Service *service.RoomService
	Logger  *logrus.Logger
}

func NewRoomController(svc *service.RoomService, logger *logrus.Logger) *RoomController {
	return &RoomController{
		Service: svc,
		Logger:  logger,
	}
}

// @Summary Create a video room
// @Description Creates the named provider room; an existing room is success with exists=true
// @Tags rooms
// @Accept json
// @Produce json
// @Param CreateRoomRequest body schemas.CreateRoomRequest true "Create Room Request"
// @Success 200 {object} schemas.CreateRoomResponse
// @Failure 400 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /api/daily/create-room [post]
func (rc *RoomController) CreateRoom(ctx *gin.Context) {
	instance := "/api/daily/create-room"

	var req schemas.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBindError(ctx, rc.Logger, err, instance)
		return
	}

	resp, err := rc.Service.CreateRoom(ctx.Request.Context(), req.RoomName)
	if err != nil {
		sendError(ctx, rc.Logger, err, instance)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
