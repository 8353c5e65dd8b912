package client

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/unais-08/blogs-fullstack/internal/domain"
)

// BlogAPI is the part of Client the cache reads through.
type BlogAPI interface {
	ListBlogs(ctx context.Context) ([]domain.BlogResponse, error)
	ListMyBlogs(ctx context.Context) ([]domain.BlogResponse, error)
	GetBlog(ctx context.Context, id uuid.UUID) (*domain.BlogResponse, error)
	CreateBlog(ctx context.Context, in NewBlog) (*domain.BlogResponse, error)
}

// BlogCache memoizes blog reads. Concurrent misses for the same data each hit
// the network; only the cached state itself is synchronized.
type BlogCache struct {
	api BlogAPI

	mu          sync.Mutex
	all         []domain.BlogResponse
	mine        []domain.BlogResponse
	byID        map[uuid.UUID]domain.BlogResponse
	allFetched  bool
	mineFetched bool
}

func NewBlogCache(api BlogAPI) *BlogCache {
	return &BlogCache{
		api:  api,
		byID: make(map[uuid.UUID]domain.BlogResponse),
	}
}

func (c *BlogCache) FetchAll(ctx context.Context, force bool) ([]domain.BlogResponse, error) {
	return c.fetchCollection(ctx, force, &c.all, &c.allFetched, c.api.ListBlogs)
}

func (c *BlogCache) FetchMine(ctx context.Context, force bool) ([]domain.BlogResponse, error) {
	return c.fetchCollection(ctx, force, &c.mine, &c.mineFetched, c.api.ListMyBlogs)
}

func (c *BlogCache) fetchCollection(
	ctx context.Context,
	force bool,
	coll *[]domain.BlogResponse,
	fetched *bool,
	load func(context.Context) ([]domain.BlogResponse, error),
) ([]domain.BlogResponse, error) {
	c.mu.Lock()
	if *fetched && !force {
		out := slices.Clone(*coll)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	blogs, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	*coll = blogs
	*fetched = true
	for _, b := range blogs {
		c.byID[b.ID] = b
	}
	return slices.Clone(blogs), nil
}

func (c *BlogCache) FetchByID(ctx context.Context, id uuid.UUID, force bool) (*domain.BlogResponse, error) {
	if !force {
		c.mu.Lock()
		b, ok := c.byID[id]
		c.mu.Unlock()
		if ok {
			return &b, nil
		}
	}

	b, err := c.api.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.byID[b.ID] = *b
	c.mu.Unlock()

	return b, nil
}

// Create publishes a blog and then reloads both collections so they include
// it. A failed reload still returns the created blog alongside the error.
func (c *BlogCache) Create(ctx context.Context, in NewBlog) (*domain.BlogResponse, error) {
	created, err := c.api.CreateBlog(ctx, in)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.allFetched = false
	c.mineFetched = false
	c.byID[created.ID] = *created
	c.mu.Unlock()

	if _, err := c.FetchAll(ctx, true); err != nil {
		return created, fmt.Errorf("refreshing blogs: %w", err)
	}
	if _, err := c.FetchMine(ctx, true); err != nil {
		return created, fmt.Errorf("refreshing my blogs: %w", err)
	}

	return created, nil
}

// Invalidate forgets everything so the next read of any kind hits the API.
func (c *BlogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.all = nil
	c.mine = nil
	c.allFetched = false
	c.mineFetched = false
	c.byID = make(map[uuid.UUID]domain.BlogResponse)
}
