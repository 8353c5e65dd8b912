package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/domain"
)

var blogCols = []string{"id", "title", "content", "author_id", "created_at", "updated_at", "name", "email"}

func TestBlogRepo_Create_ReadsBackWithAuthor(t *testing.T) {
	mock := newMock(t)
	repo := NewBlogRepo(mock)

	blogID := uuid.New()
	authorID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO blogs`).
		WithArgs("Title", "Some content here", authorID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(blogID))
	mock.ExpectQuery(`INNER JOIN users u ON b.author_id = u.id WHERE b.id = \$1`).
		WithArgs(blogID).
		WillReturnRows(pgxmock.NewRows(blogCols).
			AddRow(blogID, "Title", "Some content here", authorID, now, now, "Ada", "ada@example.com"))

	got, err := repo.Create(context.Background(), &domain.Blog{
		Title:    "Title",
		Content:  "Some content here",
		AuthorID: authorID,
	})
	require.NoError(t, err)
	assert.Equal(t, blogID, got.ID)
	assert.Equal(t, authorID, got.AuthorID)
	assert.Equal(t, "Ada", got.AuthorName)
	assert.Equal(t, "ada@example.com", got.AuthorEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepo_Create_UnknownAuthor(t *testing.T) {
	mock := newMock(t)
	repo := NewBlogRepo(mock)

	authorID := uuid.New()
	mock.ExpectQuery(`INSERT INTO blogs`).
		WithArgs("Title", "Some content here", authorID).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Create(context.Background(), &domain.Blog{Title: "Title", Content: "Some content here", AuthorID: authorID})
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "Referenced resource not found", appErr.Message)
}

func TestBlogRepo_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewBlogRepo(mock)

	id := uuid.New()
	mock.ExpectQuery(`WHERE b.id = \$1`).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBlogRepo_List_NewestFirst(t *testing.T) {
	mock := newMock(t)
	repo := NewBlogRepo(mock)

	authorID := uuid.New()
	newer, older := time.Now(), time.Now().Add(-time.Hour)
	mock.ExpectQuery(`ORDER BY b.created_at DESC`).
		WillReturnRows(pgxmock.NewRows(blogCols).
			AddRow(uuid.New(), "Second", "second content", authorID, newer, newer, "Ada", "ada@example.com").
			AddRow(uuid.New(), "First", "first content!", authorID, older, older, "Ada", "ada@example.com"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Second", got[0].Title)
	assert.Equal(t, "First", got[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepo_ListByAuthor_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewBlogRepo(mock)

	authorID := uuid.New()
	mock.ExpectQuery(`WHERE b.author_id = \$1 ORDER BY b.created_at DESC`).
		WithArgs(authorID).
		WillReturnRows(pgxmock.NewRows(blogCols))

	got, err := repo.ListByAuthor(context.Background(), authorID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBlogRepo_List_QueryError(t *testing.T) {
	mock := newMock(t)
	repo := NewBlogRepo(mock)

	mock.ExpectQuery(`FROM blogs b`).WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing blogs")
}
