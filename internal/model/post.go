package model

import "time"

// Post is a technique write-up on the shared feed. Independent from rooms.
type Post struct {
	ID         string
	AuthorName string
	Title      string
	Text       string
	CreatedAt  time.Time

	// LikedBy holds caller ids; a caller toggles its own membership.
	LikedBy map[string]struct{}
}

func (p *Post) LikeCount() int {
	return len(p.LikedBy)
}

func (p *Post) LikedByCaller(callerID string) bool {
	_, ok := p.LikedBy[callerID]
	return ok
}

func (p *Post) Clone() Post {
	out := *p
	out.LikedBy = make(map[string]struct{}, len(p.LikedBy))
	for id := range p.LikedBy {
		out.LikedBy[id] = struct{}{}
	}
	return out
}
