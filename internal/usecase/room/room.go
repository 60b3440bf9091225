package usecase_room

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/leiven89/BUJIN-YUGI/internal/model"
)

var (
	ErrCodeConflict     = errors.New("code conflict")
	ErrRoomsUnavailable = errors.New("no available rooms")
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrValidation       = errors.New("invalid input")
)

// RoomRegistry owns the in-memory room set. Insert must be atomic with
// respect to the code uniqueness check; Update serializes all mutations
// of a single room.
type RoomRegistry interface {
	Insert(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, code model.RoomCode, fn func(*model.Room) error) error
	ByCode(ctx context.Context, code model.RoomCode) (model.Room, error)
	Count(ctx context.Context) int
}

type Usecase struct {
	registry RoomRegistry

	nameCap int
}

func New(registry RoomRegistry, nameCap int) *Usecase {
	if nameCap <= 0 {
		nameCap = 24 /* default */
	}

	return &Usecase{
		registry: registry,
		nameCap:  nameCap,
	}
}

// Create opens a room in lobby phase with the caller as host and only
// member. An empty callerID gets a generated id the client must keep to
// stay recognized as host.
func (u *Usecase) Create(ctx context.Context, displayName, callerID string) (model.Room, string, error) {
	name, err := u.cleanName(displayName)
	if err != nil {
		return model.Room{}, "", err
	}
	if callerID == "" {
		callerID = model.NewID()
	}

	host := &model.Member{
		ID:          callerID,
		DisplayName: name,
	}

	room, err := u.createRoomLobby(ctx, host)
	if err != nil {
		return model.Room{}, "", err
	}
	return room, callerID, nil
}

// Assuming that codes can conflict.
// Retrying...
func (u *Usecase) createRoomLobby(ctx context.Context, host *model.Member) (model.Room, error) {
	var retries = 3
	for retries > 0 {
		room := &model.Room{
			Code:      u.buildRoomCode(),
			CreatedAt: time.Now(),
			HostID:    host.ID,
			Phase:     model.PhaseLobby,
			Members:   []*model.Member{host},
		}
		if err := u.registry.Insert(ctx, room); err != nil {
			if errors.Is(err, ErrCodeConflict) {
				retries--
			} else {
				return model.Room{}, errors.Join(ErrInternal, err)
			}
		} else {
			return room.Clone(), nil
		}
	}
	return model.Room{}, ErrRoomsUnavailable
}

func (u *Usecase) buildRoomCode() model.RoomCode {
	const codeLen = 6
	var builder strings.Builder
	builder.Grow(codeLen)

	for i := 0; i < codeLen; i++ {
		builder.WriteByte(byte(rand.Intn(10)) + '0')
	}

	return model.RoomCode(builder.String())
}

// Join adds the caller to the room in any phase. A callerID already
// present is treated as a reconnect: only the display name changes.
func (u *Usecase) Join(ctx context.Context, code, displayName, callerID string) (model.Room, string, error) {
	name, err := u.cleanName(displayName)
	if err != nil {
		return model.Room{}, "", err
	}
	if callerID == "" {
		callerID = model.NewID()
	}

	var snapshot model.Room
	err = u.registry.Update(ctx, model.RoomCode(code), func(room *model.Room) error {
		if existing := room.Member(callerID); existing != nil {
			existing.DisplayName = name
		} else {
			room.Members = append(room.Members, &model.Member{
				ID:          callerID,
				DisplayName: name,
			})
		}
		snapshot = room.Clone()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, "", ErrResourceNotFound
		}
		return model.Room{}, "", errors.Join(ErrInternal, err)
	}

	return snapshot, callerID, nil
}

func (u *Usecase) Snapshot(ctx context.Context, code string) (model.Room, error) {
	room, err := u.registry.ByCode(ctx, model.RoomCode(code))
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrResourceNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

func (u *Usecase) Count(ctx context.Context) int {
	return u.registry.Count(ctx)
}

func (u *Usecase) cleanName(displayName string) (string, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return "", ErrValidation
	}
	return truncate(name, u.nameCap), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
