package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Comment struct {
	ID          int64     `json:"id" db:"id"`
	ProjectID   int64     `json:"project_id" db:"project_id"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorEmail string    `json:"author_email" db:"author_email"`
	Content     string    `json:"content" db:"content"`
	Rating      *int      `json:"rating" db:"rating"`
	Approved    bool      `json:"approved" db:"approved"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CommentWithProject is a comment joined with its project's title.
type CommentWithProject struct {
	Comment
	ProjectTitle string `json:"project_title" db:"project_title"`
}

// CommentFilter narrows the moderation listing. Nil means any state.
type CommentFilter struct {
	Approved *bool
}

// Moderation event types.
const (
	EventCommentCreated  = "comment_created"
	EventCommentApproved = "comment_approved"
	EventCommentRejected = "comment_rejected"
	EventCommentDeleted  = "comment_deleted"
)

// ModerationEvent is published whenever a comment enters or changes state in the moderation queue.
type ModerationEvent struct {
	Type    string  `json:"type"`
	Comment Comment `json:"data"`
}
