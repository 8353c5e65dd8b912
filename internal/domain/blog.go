package domain

import (
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogWithAuthor is a blog row joined with its author.
type BlogWithAuthor struct {
	Blog
	AuthorName  string
	AuthorEmail string
}

type Author struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type BlogResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *BlogWithAuthor) ToResponse() BlogResponse {
	return BlogResponse{
		ID:      b.ID,
		Title:   b.Title,
		Content: b.Content,
		Author: Author{
			ID:    b.AuthorID,
			Name:  b.AuthorName,
			Email: b.AuthorEmail,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBlogResponses shapes a list; the result is never nil.
func ToBlogResponses(blogs []BlogWithAuthor) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for i := range blogs {
		out = append(out, blogs[i].ToResponse())
	}
	return out
}
