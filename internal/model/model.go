package model

import (
	"strings"

	"github.com/google/uuid"
)

type RoomCode string

const EmptyRoomCode RoomCode = ""

// Codes are shared out-of-band (spoken, typed), so lookups tolerate
// whitespace and case noise.
func (c RoomCode) Normalized() RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(string(c))))
}

func NewID() string {
	return uuid.New().String()
}

type WinnerMode string

const (
	// WinnerSet keeps every member tied at the top count.
	WinnerSet WinnerMode = "set"
	// WinnerSingle keeps the first member in join order to hold the top count.
	WinnerSingle WinnerMode = "single"
)
