package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/auth"
	"github.com/unais-08/blogs-fullstack/internal/service"
	"go.uber.org/zap"
)

func TestBlogService_CreateAndList(t *testing.T) {
	f := newFixture(t, auth.NopDenylist{})
	blogs := service.NewBlogService(f.store.Blogs(), zap.NewNop())
	ctx := context.Background()

	ada, err := f.svc.Register(ctx, service.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "Secret123"})
	require.NoError(t, err)
	bob, err := f.svc.Register(ctx, service.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "Secret123"})
	require.NoError(t, err)

	before, err := blogs.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, before)
	assert.Empty(t, before)

	first, err := blogs.Create(ctx, ada.User.ID, service.CreateBlogInput{Title: "First", Content: "first post content"})
	require.NoError(t, err)
	_, err = blogs.Create(ctx, bob.User.ID, service.CreateBlogInput{Title: "Bob's", Content: "bob post content"})
	require.NoError(t, err)
	second, err := blogs.Create(ctx, ada.User.ID, service.CreateBlogInput{Title: "Second", Content: "second post content"})
	require.NoError(t, err)

	assert.Equal(t, ada.User.ID, first.Author.ID)
	assert.Equal(t, "Ada", first.Author.Name)
	assert.Equal(t, "ada@example.com", first.Author.Email)

	all, err := blogs.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[2].ID)

	mine, err := blogs.ListByAuthor(ctx, ada.User.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Second", mine[0].Title)
	assert.Equal(t, "First", mine[1].Title)
	for _, b := range mine {
		assert.Equal(t, ada.User.ID, b.Author.ID)
	}
}

func TestBlogService_Get(t *testing.T) {
	f := newFixture(t, auth.NopDenylist{})
	blogs := service.NewBlogService(f.store.Blogs(), zap.NewNop())
	ctx := context.Background()

	ada, err := f.svc.Register(ctx, service.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "Secret123"})
	require.NoError(t, err)
	created, err := blogs.Create(ctx, ada.User.ID, service.CreateBlogInput{Title: "Hello", Content: "Hello, world!"})
	require.NoError(t, err)

	got, err := blogs.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", got.Content)

	_, err = blogs.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrBlogNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestBlogService_CreateForUnknownAuthor(t *testing.T) {
	f := newFixture(t, auth.NopDenylist{})
	blogs := service.NewBlogService(f.store.Blogs(), zap.NewNop())

	_, err := blogs.Create(context.Background(), uuid.New(), service.CreateBlogInput{Title: "Orphan", Content: "nobody wrote this"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestBlogService_ListByAuthor_EmptyIsNotNil(t *testing.T) {
	f := newFixture(t, auth.NopDenylist{})
	blogs := service.NewBlogService(f.store.Blogs(), zap.NewNop())

	mine, err := blogs.ListByAuthor(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)
}
