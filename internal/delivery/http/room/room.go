package http_room

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/common"
	usecase_room "github.com/leiven89/BUJIN-YUGI/internal/usecase/room"
)

type Controller struct {
	usecase *usecase_room.Usecase
	logger  *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(usecase *usecase_room.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.POST("/:code/join", c.join)
		rooms.GET("/:code", c.snapshot)
	}
}

// CreateRoomRequestDTO carries the host's name and optional caller id.
type CreateRoomRequestDTO struct {
	CallerID    string `json:"callerId"`
	DisplayName string `json:"displayName"`
}

// @Summary Create a room
// @Description Creates a lobby room with the caller as host
// @Tags Rooms
// @Accept json
// @Produce json
// @Success 201 {object} http_common.RoomDTO "Room created"
// @Failure 400 {object} http_common.ErrorResponse "Invalid input"
// @Failure 503 {object} http_common.ErrorResponse "No room codes available"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, hostID, err := c.usecase.Create(ctx, req.DisplayName, req.CallerID)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	ctx.Header("X-member-id", hostID)
	ctx.JSON(http.StatusCreated, http_common.NewRoomDTO(room))
}

// JoinRoomRequestDTO mirrors CreateRoomRequestDTO; a known callerId
// means reconnect.
type JoinRoomRequestDTO struct {
	CallerID    string `json:"callerId"`
	DisplayName string `json:"displayName"`
}

// @Summary Join a room
// @Description Adds the caller to the room, or renames on reconnect
// @Tags Rooms
// @Accept json
// @Produce json
// @Param code path string true "Room code" example("123456")
// @Success 200 {object} http_common.RoomDTO "Joined"
// @Failure 400 {object} http_common.ErrorResponse "Invalid input"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Router /rooms/{code}/join [post]
func (c *Controller) join(ctx *gin.Context) {
	code := ctx.Param("code")

	var req JoinRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, memberID, err := c.usecase.Join(ctx, code, req.DisplayName, req.CallerID)
	if err != nil {
		c.logger.Error("failed to join room",
			slog.String("code", code), slog.String("error", err.Error()))
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	ctx.Header("X-member-id", memberID)
	ctx.JSON(http.StatusOK, http_common.NewRoomDTO(room))
}

// @Summary Room snapshot
// @Description Returns the room with phase-gated technique visibility
// @Tags Rooms
// @Produce json
// @Param code path string true "Room code" example("123456")
// @Success 200 {object} http_common.RoomDTO "Snapshot"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Router /rooms/{code} [get]
func (c *Controller) snapshot(ctx *gin.Context) {
	code := ctx.Param("code")

	room, err := c.usecase.Snapshot(ctx, code)
	if err != nil {
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.NewRoomDTO(room))
}
