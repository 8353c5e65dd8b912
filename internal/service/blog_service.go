package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/domain"
	"github.com/unais-08/blogs-fullstack/internal/repository"
	"go.uber.org/zap"
)

var ErrBlogNotFound = apperror.NotFound("Blog not found")

type BlogService struct {
	blogRepo repository.BlogRepository
	log      *zap.Logger
}

func NewBlogService(blogRepo repository.BlogRepository, log *zap.Logger) *BlogService {
	return &BlogService{blogRepo: blogRepo, log: log}
}

type CreateBlogInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *BlogService) Create(ctx context.Context, authorID uuid.UUID, input CreateBlogInput) (*domain.BlogResponse, error) {
	blog := &domain.Blog{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: authorID,
	}

	created, err := s.blogRepo.Create(ctx, blog)
	if err != nil {
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	s.log.Info("blog created",
		zap.Stringer("blog_id", created.ID),
		zap.Stringer("author_id", authorID),
	)

	resp := created.ToResponse()
	return &resp, nil
}

func (s *BlogService) Get(ctx context.Context, id uuid.UUID) (*domain.BlogResponse, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}

	resp := blog.ToResponse()
	return &resp, nil
}

func (s *BlogService) List(ctx context.Context) ([]domain.BlogResponse, error) {
	blogs, err := s.blogRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ToBlogResponses(blogs), nil
}

func (s *BlogService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.BlogResponse, error) {
	blogs, err := s.blogRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return domain.ToBlogResponses(blogs), nil
}
