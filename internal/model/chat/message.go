package chat

import "time"

// Transcript authors.
const (
	AuthorAgent    = "agent"
	AuthorProspect = "prospect"
)

// Message is one transcript entry. The transcript is append-only and
// chronological.
type Message struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
