package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/unais-08/blogs-fullstack/internal/domain"
)

// Lookups return (nil, nil) when no row matches.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.BlogWithAuthor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogWithAuthor, error)
	List(ctx context.Context) ([]domain.BlogWithAuthor, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.BlogWithAuthor, error)
}
