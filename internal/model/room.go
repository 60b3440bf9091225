package model

import "time"

type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseBuilding Phase = "building"
	PhaseVoting   Phase = "voting"
	PhaseResult   Phase = "result"
)

func (p Phase) String() string {
	return string(p)
}

type Member struct {
	ID          string
	DisplayName string

	Technique    string
	SubmittedAt  *time.Time
	VoteTargetID string
	VotedAt      *time.Time
}

func (m *Member) HasSubmitted() bool {
	return m.SubmittedAt != nil
}

func (m *Member) HasVoted() bool {
	return m.VotedAt != nil
}

// Room is mutated only under its registry lock.
// Members keeps join order; ids are unique within a room.
type Room struct {
	Code      RoomCode
	CreatedAt time.Time
	HostID    string
	Phase     Phase

	Members []*Member

	WinnerIDs     []string
	ResultSummary string
}

func (r *Room) Member(id string) *Member {
	for _, m := range r.Members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (r *Room) AllSubmitted() bool {
	for _, m := range r.Members {
		if !m.HasSubmitted() {
			return false
		}
	}
	return len(r.Members) > 0
}

func (r *Room) AllVoted() bool {
	for _, m := range r.Members {
		if !m.HasVoted() {
			return false
		}
	}
	return len(r.Members) > 0
}

// Clone returns a deep copy safe to hand out after the registry lock
// is released.
func (r *Room) Clone() Room {
	out := *r
	out.Members = make([]*Member, len(r.Members))
	for i, m := range r.Members {
		mc := *m
		if m.SubmittedAt != nil {
			t := *m.SubmittedAt
			mc.SubmittedAt = &t
		}
		if m.VotedAt != nil {
			t := *m.VotedAt
			mc.VotedAt = &t
		}
		out.Members[i] = &mc
	}
	out.WinnerIDs = append([]string(nil), r.WinnerIDs...)
	return out
}
