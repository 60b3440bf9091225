package storage_room

import (
	"context"
	"sync"

	"github.com/leiven89/BUJIN-YUGI/internal/model"
	usecase_room "github.com/leiven89/BUJIN-YUGI/internal/usecase/room"
)

type entry struct {
	// mu serializes every mutation of this room, including the
	// "did the last submit/vote just arrive" checks.
	mu   sync.Mutex
	room *model.Room
}

// Storage is the process-wide room registry. Rooms live until the
// process exits; there is no expiry or delete.
type Storage struct {
	mu    sync.RWMutex
	rooms map[model.RoomCode]*entry
}

func New() *Storage {
	return &Storage{
		rooms: make(map[model.RoomCode]*entry),
	}
}

// Insert registers a room under its code. Check-then-insert runs under
// the map lock, so two creators racing for one code cannot both win.
func (s *Storage) Insert(_ context.Context, room *model.Room) error {
	code := room.Code.Normalized()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[code]; exists {
		return usecase_room.ErrCodeConflict
	}
	s.rooms[code] = &entry{room: room}
	return nil
}

// Update runs fn on the room under its per-room lock.
func (s *Storage) Update(_ context.Context, code model.RoomCode, fn func(*model.Room) error) error {
	e, err := s.entry(code)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.room)
}

// ByCode returns a deep copy; callers never see live state.
func (s *Storage) ByCode(_ context.Context, code model.RoomCode) (model.Room, error) {
	e, err := s.entry(code)
	if err != nil {
		return model.Room{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.room.Clone(), nil
}

func (s *Storage) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

func (s *Storage) entry(code model.RoomCode) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rooms[code.Normalized()]
	if !ok {
		return nil, usecase_room.ErrResourceNotFound
	}
	return e, nil
}
