package http_voting

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/common"
	usecase_game "github.com/leiven89/BUJIN-YUGI/internal/usecase/game"
)

// Controller drives the round lifecycle: host restart, technique
// submission and voting.
type Controller struct {
	uc *usecase_game.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_game.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	room := router.Group("/rooms/:code")
	room.POST("/start", c.start)
	room.POST("/technique", c.technique)
	room.POST("/vote", c.vote)
}

// StartRequestDTO identifies the caller; only the host may start.
type StartRequestDTO struct {
	CallerID string `json:"callerId"`
}

// @Summary Start or restart a round
// @Description Moves the room into building and clears previous round state
// @Tags Voting operations
// @Accept json
// @Produce json
// @Param code path string true "Room code" example("123456")
// @Success 200 {object} http_common.RoomDTO "Round started"
// @Failure 403 {object} http_common.ErrorResponse "Caller is not the host"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Router /rooms/{code}/start [post]
func (c *Controller) start(ctx *gin.Context) {
	code := ctx.Param("code")

	var req StartRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, err := c.uc.Restart(ctx, code, req.CallerID)
	if err != nil {
		c.logger.Error("failed to start round",
			slog.String("code", code), slog.String("error", err.Error()))
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.NewRoomDTO(room))
}

// TechniqueRequestDTO carries one member's technique text.
type TechniqueRequestDTO struct {
	CallerID string `json:"callerId"`
	Text     string `json:"text"`
}

// TechniqueResponseDTO reports whether this submission closed the
// building phase.
type TechniqueResponseDTO struct {
	http_common.RoomDTO
	AllSubmitted bool `json:"allSubmitted"`
}

// @Summary Submit a technique
// @Description Stores the caller's technique; the last submission opens voting
// @Tags Voting operations
// @Accept json
// @Produce json
// @Param code path string true "Room code" example("123456")
// @Success 200 {object} TechniqueResponseDTO "Technique accepted"
// @Failure 400 {object} http_common.ErrorResponse "Wrong phase or empty text"
// @Failure 404 {object} http_common.ErrorResponse "Room or member not found"
// @Router /rooms/{code}/technique [post]
func (c *Controller) technique(ctx *gin.Context) {
	code := ctx.Param("code")

	var req TechniqueRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, allSubmitted, err := c.uc.Submit(ctx, code, req.CallerID, req.Text)
	if err != nil {
		c.logger.Error("failed to submit technique",
			slog.String("code", code), slog.String("error", err.Error()))
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, TechniqueResponseDTO{
		RoomDTO:      http_common.NewRoomDTO(room),
		AllSubmitted: allSubmitted,
	})
}

// VoteRequestDTO names the member the caller votes for.
type VoteRequestDTO struct {
	CallerID string `json:"callerId"`
	TargetID string `json:"targetId"`
}

// VoteResponseDTO reports whether this vote triggered the tally; the
// embedded room carries the result summary once it did.
type VoteResponseDTO struct {
	http_common.RoomDTO
	AllVoted bool `json:"allVoted"`
}

// @Summary Cast a vote
// @Description Records the caller's vote; the last vote runs the tally
// @Tags Voting operations
// @Accept json
// @Produce json
// @Param code path string true "Room code" example("123456")
// @Success 200 {object} VoteResponseDTO "Vote accepted"
// @Failure 400 {object} http_common.ErrorResponse "Wrong phase or self-vote"
// @Failure 404 {object} http_common.ErrorResponse "Room, caller or target not found"
// @Router /rooms/{code}/vote [post]
func (c *Controller) vote(ctx *gin.Context) {
	code := ctx.Param("code")

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, allVoted, err := c.uc.Vote(ctx, code, req.CallerID, req.TargetID)
	if err != nil {
		c.logger.Error("failed to cast vote",
			slog.String("code", code), slog.String("error", err.Error()))
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{
		RoomDTO:  http_common.NewRoomDTO(room),
		AllVoted: allVoted,
	})
}
