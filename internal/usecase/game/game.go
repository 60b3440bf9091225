package usecase_game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leiven89/BUJIN-YUGI/internal/model"
	usecase_room "github.com/leiven89/BUJIN-YUGI/internal/usecase/room"
)

var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrForbidden        = errors.New("host only")
	ErrInvalidPhase     = errors.New("wrong phase")
	ErrValidation       = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
)

// RoomRegistry is the slice of the registry the state machine needs:
// per-room serialized mutation. The all-submitted / all-voted checks
// below are read-modify-write and only hold inside Update.
type RoomRegistry interface {
	Update(ctx context.Context, code model.RoomCode, fn func(*model.Room) error) error
}

type Usecase struct {
	registry RoomRegistry

	techniqueCap int
	winnerMode   model.WinnerMode
}

func New(registry RoomRegistry, techniqueCap int, winnerMode model.WinnerMode) *Usecase {
	if techniqueCap <= 0 {
		techniqueCap = 200 /* default */
	}
	if winnerMode != model.WinnerSingle {
		winnerMode = model.WinnerSet
	}

	return &Usecase{
		registry:     registry,
		techniqueCap: techniqueCap,
		winnerMode:   winnerMode,
	}
}

// Restart moves the room into building and wipes every submission,
// vote and the previous result. Host only; callable from any phase.
func (u *Usecase) Restart(ctx context.Context, code, callerID string) (model.Room, error) {
	var snapshot model.Room
	err := u.registry.Update(ctx, model.RoomCode(code), func(room *model.Room) error {
		if callerID != room.HostID {
			return ErrForbidden
		}

		room.Phase = model.PhaseBuilding
		room.ResultSummary = ""
		room.WinnerIDs = nil
		for _, m := range room.Members {
			m.Technique = ""
			m.SubmittedAt = nil
			m.VoteTargetID = ""
			m.VotedAt = nil
		}

		snapshot = room.Clone()
		return nil
	})
	if err != nil {
		return model.Room{}, u.mapErr(err)
	}
	return snapshot, nil
}

// Submit stores the member's technique. When the last outstanding
// member submits, the room advances to voting; the returned flag
// reports whether this call was the one that did it.
func (u *Usecase) Submit(ctx context.Context, code, memberID, text string) (model.Room, bool, error) {
	var (
		snapshot     model.Room
		allSubmitted bool
	)
	err := u.registry.Update(ctx, model.RoomCode(code), func(room *model.Room) error {
		if room.Phase != model.PhaseBuilding {
			return ErrInvalidPhase
		}
		member := room.Member(memberID)
		if member == nil {
			return ErrResourceNotFound
		}
		technique := strings.TrimSpace(text)
		if technique == "" {
			return ErrValidation
		}

		now := time.Now()
		member.Technique = truncate(technique, u.techniqueCap)
		member.SubmittedAt = &now

		if room.AllSubmitted() {
			room.Phase = model.PhaseVoting
			allSubmitted = true
		}

		snapshot = room.Clone()
		return nil
	})
	if err != nil {
		return model.Room{}, false, u.mapErr(err)
	}
	return snapshot, allSubmitted, nil
}

// Vote records the member's choice; re-voting overwrites. When the
// last outstanding member votes, the tally runs and the room lands in
// result.
func (u *Usecase) Vote(ctx context.Context, code, memberID, targetID string) (model.Room, bool, error) {
	var (
		snapshot model.Room
		allVoted bool
	)
	err := u.registry.Update(ctx, model.RoomCode(code), func(room *model.Room) error {
		if room.Phase != model.PhaseVoting {
			return ErrInvalidPhase
		}
		voter := room.Member(memberID)
		if voter == nil {
			return ErrResourceNotFound
		}
		if room.Member(targetID) == nil {
			return ErrResourceNotFound
		}
		if memberID == targetID {
			return ErrValidation
		}

		now := time.Now()
		voter.VoteTargetID = targetID
		voter.VotedAt = &now

		if room.AllVoted() {
			u.tally(room)
			room.Phase = model.PhaseResult
			allVoted = true
		}

		snapshot = room.Clone()
		return nil
	})
	if err != nil {
		return model.Room{}, false, u.mapErr(err)
	}
	return snapshot, allVoted, nil
}

// tally counts votes, stores the winner set and a human-readable
// summary on the room. Members are enumerated strictly in join order
// so the summary is reproducible.
func (u *Usecase) tally(room *model.Room) {
	counts := make(map[string]int, len(room.Members))
	for _, m := range room.Members {
		counts[m.ID] = 0
	}
	for _, m := range room.Members {
		if m.VoteTargetID != "" {
			counts[m.VoteTargetID]++
		}
	}

	maxCount := 0
	for _, m := range room.Members {
		if counts[m.ID] > maxCount {
			maxCount = counts[m.ID]
		}
	}

	var winners []*model.Member
	if maxCount > 0 {
		for _, m := range room.Members {
			if counts[m.ID] == maxCount {
				winners = append(winners, m)
				if u.winnerMode == model.WinnerSingle {
					break
				}
			}
		}
	}

	var builder strings.Builder
	for _, m := range room.Members {
		technique := m.Technique
		if technique == "" {
			technique = "(no technique)"
		}
		fmt.Fprintf(&builder, "%s: %s (%d votes)\n", m.DisplayName, technique, counts[m.ID])
	}

	if len(winners) == 0 {
		builder.WriteString("No winner")
	} else {
		labels := make([]string, len(winners))
		ids := make([]string, len(winners))
		for i, w := range winners {
			technique := w.Technique
			if technique == "" {
				technique = "(no technique)"
			}
			labels[i] = fmt.Sprintf("%s (%s)", w.DisplayName, technique)
			ids[i] = w.ID
		}
		if len(winners) == 1 {
			fmt.Fprintf(&builder, "Winner: %s", labels[0])
		} else {
			fmt.Fprintf(&builder, "Winners: %s", strings.Join(labels, ", "))
		}
		room.WinnerIDs = ids
	}

	room.ResultSummary = builder.String()
}

func (u *Usecase) mapErr(err error) error {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInvalidPhase),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrResourceNotFound):
		return err
	case errors.Is(err, usecase_room.ErrResourceNotFound):
		return ErrResourceNotFound
	default:
		return errors.Join(ErrInternal, err)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
