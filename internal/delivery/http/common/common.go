package http_common

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leiven89/BUJIN-YUGI/internal/model"
	usecase_game "github.com/leiven89/BUJIN-YUGI/internal/usecase/game"
	usecase_post "github.com/leiven89/BUJIN-YUGI/internal/usecase/post"
	usecase_room "github.com/leiven89/BUJIN-YUGI/internal/usecase/room"
)

type ErrorResponse struct {
	Message string `json:"error"`
}

// RespondError maps usecase sentinel errors onto HTTP statuses:
// 400 validation/phase, 403 host-only, 404 unknown resource, 503 code
// space exhausted, 500 everything else (logged, generic message out).
func RespondError(ctx *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, usecase_room.ErrValidation),
		errors.Is(err, usecase_game.ErrValidation),
		errors.Is(err, usecase_post.ErrValidation):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid input"})
	case errors.Is(err, usecase_game.ErrInvalidPhase):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "wrong phase"})
	case errors.Is(err, usecase_game.ErrForbidden):
		ctx.JSON(http.StatusForbidden, ErrorResponse{Message: "host only"})
	case errors.Is(err, usecase_room.ErrResourceNotFound),
		errors.Is(err, usecase_game.ErrResourceNotFound),
		errors.Is(err, usecase_post.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "not found"})
	case errors.Is(err, usecase_room.ErrRoomsUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "unavailable"})
	default:
		logger.Error("unexpected error", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
	}
}

// MemberDTO hides techniques until voting opens so early peeks at the
// snapshot reveal nothing.
type MemberDTO struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	IsHost       bool   `json:"isHost"`
	HasSubmitted bool   `json:"hasSubmitted"`
	HasVoted     bool   `json:"hasVoted"`
	Technique    string `json:"technique,omitempty"`
	VotedFor     string `json:"votedFor,omitempty"`
}

type RoomDTO struct {
	RoomCode      string      `json:"roomCode"`
	HostID        string      `json:"hostId"`
	Phase         string      `json:"phase"`
	CreatedAt     time.Time   `json:"createdAt"`
	Members       []MemberDTO `json:"members"`
	WinnerIDs     []string    `json:"winnerIds,omitempty"`
	ResultSummary string      `json:"resultSummary,omitempty"`
}

func NewRoomDTO(room model.Room) RoomDTO {
	revealTechniques := room.Phase == model.PhaseVoting || room.Phase == model.PhaseResult
	revealVotes := room.Phase == model.PhaseResult

	members := make([]MemberDTO, 0, len(room.Members))
	for _, m := range room.Members {
		dto := MemberDTO{
			ID:           m.ID,
			DisplayName:  m.DisplayName,
			IsHost:       m.ID == room.HostID,
			HasSubmitted: m.HasSubmitted(),
			HasVoted:     m.HasVoted(),
		}
		if revealTechniques {
			dto.Technique = m.Technique
		}
		if revealVotes {
			dto.VotedFor = m.VoteTargetID
		}
		members = append(members, dto)
	}

	return RoomDTO{
		RoomCode:      string(room.Code),
		HostID:        room.HostID,
		Phase:         room.Phase.String(),
		CreatedAt:     room.CreatedAt,
		Members:       members,
		WinnerIDs:     room.WinnerIDs,
		ResultSummary: room.ResultSummary,
	}
}
