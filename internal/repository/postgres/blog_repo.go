package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/unais-08/blogs-fullstack/internal/database"
	"github.com/unais-08/blogs-fullstack/internal/domain"
)

const selectBlogWithAuthor = `
		SELECT b.id, b.title, b.content, b.author_id, b.created_at, b.updated_at,
			u.name, u.email
		FROM blogs b
		INNER JOIN users u ON b.author_id = u.id`

type BlogRepo struct {
	db database.Querier
}

func NewBlogRepo(db database.Querier) *BlogRepo {
	return &BlogRepo{db: db}
}

// Create inserts the blog and reads it back joined with its author.
func (r *BlogRepo) Create(ctx context.Context, blog *domain.Blog) (*domain.BlogWithAuthor, error) {
	query := `
		INSERT INTO blogs (title, content, author_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := r.db.QueryRow(ctx, query, blog.Title, blog.Content, blog.AuthorID).Scan(&blog.ID); err != nil {
		return nil, fmt.Errorf("inserting blog: %w", translate(err))
	}

	created, err := r.GetByID(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("blog %s vanished after insert", blog.ID)
	}
	return created, nil
}

func (r *BlogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogWithAuthor, error) {
	b, err := scanBlog(r.db.QueryRow(ctx, selectBlogWithAuthor+" WHERE b.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting blog: %w", err)
	}
	return b, nil
}

func (r *BlogRepo) List(ctx context.Context) ([]domain.BlogWithAuthor, error) {
	return r.list(ctx, selectBlogWithAuthor+" ORDER BY b.created_at DESC")
}

func (r *BlogRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.BlogWithAuthor, error) {
	return r.list(ctx, selectBlogWithAuthor+" WHERE b.author_id = $1 ORDER BY b.created_at DESC", authorID)
}

func (r *BlogRepo) list(ctx context.Context, query string, args ...any) ([]domain.BlogWithAuthor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := []domain.BlogWithAuthor{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning blog: %w", err)
		}
		blogs = append(blogs, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, nil
}

func scanBlog(row pgx.Row) (*domain.BlogWithAuthor, error) {
	var b domain.BlogWithAuthor
	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		&b.AuthorName, &b.AuthorEmail,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
