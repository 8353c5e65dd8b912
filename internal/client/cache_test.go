package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unais-08/blogs-fullstack/internal/client"
)

func TestBlogCache_FetchByIDHitsNetworkOnce(t *testing.T) {
	ctx := context.Background()
	c, hc := newClient(t)
	registerAlice(t, c)

	created, err := c.CreateBlog(ctx, client.NewBlog{Title: "Cached", Content: "Body of the post"})
	require.NoError(t, err)

	cache := client.NewBlogCache(c)
	path := "GET /api/blogs/" + created.ID.String()

	first, err := cache.FetchByID(ctx, created.ID, false)
	require.NoError(t, err)
	second, err := cache.FetchByID(ctx, created.ID, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hc.get(path))

	_, err = cache.FetchByID(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, hc.get(path))
}

func TestBlogCache_CollectionsAreMemoized(t *testing.T) {
	ctx := context.Background()
	c, hc := newClient(t)
	registerAlice(t, c)
	cache := client.NewBlogCache(c)

	all, err := cache.FetchAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, all)
	_, err = cache.FetchAll(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, hc.get("GET /api/blogs"))

	_, err = cache.FetchAll(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, hc.get("GET /api/blogs"))

	_, err = cache.FetchMine(ctx, false)
	require.NoError(t, err)
	_, err = cache.FetchMine(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, hc.get("GET /api/blogs/my/blogs"))
}

func TestBlogCache_CollectionFetchPopulatesByID(t *testing.T) {
	ctx := context.Background()
	c, hc := newClient(t)
	registerAlice(t, c)

	created, err := c.CreateBlog(ctx, client.NewBlog{Title: "Listed", Content: "Body of the post"})
	require.NoError(t, err)

	cache := client.NewBlogCache(c)
	_, err = cache.FetchAll(ctx, false)
	require.NoError(t, err)

	got, err := cache.FetchByID(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Listed", got.Title)
	assert.Equal(t, 0, hc.get("GET /api/blogs/"+created.ID.String()))
}

func TestBlogCache_CreateRefreshesBothCollections(t *testing.T) {
	ctx := context.Background()
	c, hc := newClient(t)
	registerAlice(t, c)
	cache := client.NewBlogCache(c)

	_, err := cache.FetchAll(ctx, false)
	require.NoError(t, err)
	_, err = cache.FetchMine(ctx, false)
	require.NoError(t, err)

	created, err := cache.Create(ctx, client.NewBlog{Title: "Fresh", Content: "Body of the post"})
	require.NoError(t, err)
	assert.Equal(t, 2, hc.get("GET /api/blogs"))
	assert.Equal(t, 2, hc.get("GET /api/blogs/my/blogs"))

	all, err := cache.FetchAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)

	mine, err := cache.FetchMine(ctx, false)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 2, hc.get("GET /api/blogs"))
}

func TestBlogCache_CreateFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	c, hc := newClient(t)
	registerAlice(t, c)
	cache := client.NewBlogCache(c)

	_, err := cache.FetchAll(ctx, false)
	require.NoError(t, err)

	_, err = cache.Create(ctx, client.NewBlog{Title: "", Content: ""})
	require.Error(t, err)

	_, err = cache.FetchAll(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, hc.get("GET /api/blogs"))
}

func TestBlogCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, hc := newClient(t)
	registerAlice(t, c)

	created, err := c.CreateBlog(ctx, client.NewBlog{Title: "Gone", Content: "Body of the post"})
	require.NoError(t, err)

	cache := client.NewBlogCache(c)
	_, err = cache.FetchAll(ctx, false)
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.FetchByID(ctx, created.ID, false)
	require.NoError(t, err)
	_, err = cache.FetchAll(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, 1, hc.get("GET /api/blogs/"+created.ID.String()))
	assert.Equal(t, 2, hc.get("GET /api/blogs"))
}
