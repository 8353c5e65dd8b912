// Package testutil provides in-memory stand-ins for the Postgres repositories.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/domain"
)

// Store backs both fake repositories so blog reads can join their author
// and blog inserts can check the author exists.
type Store struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
	blogs []*domain.Blog
	clock time.Time

	// Fail, when set, is returned by every repository call.
	Fail error
}

func NewStore() *Store {
	return &Store{
		users: make(map[uuid.UUID]*domain.User),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so newest-first ordering is stable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (s *Store) Blogs() *BlogRepo { return &BlogRepo{s: s} }

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Fail != nil {
		return r.s.Fail
	}

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return apperror.Wrap(apperror.KindConflict, "Resource already exists", errors.New("duplicate email"))
		}
	}

	now := r.s.tick()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Fail != nil {
		return nil, r.s.Fail
	}

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Fail != nil {
		return nil, r.s.Fail
	}

	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

type BlogRepo struct {
	s *Store
}

func (r *BlogRepo) Create(_ context.Context, blog *domain.Blog) (*domain.BlogWithAuthor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Fail != nil {
		return nil, r.s.Fail
	}

	if _, ok := r.s.users[blog.AuthorID]; !ok {
		return nil, apperror.Wrap(apperror.KindValidation, "Referenced resource not found", errors.New("unknown author"))
	}

	now := r.s.tick()
	blog.ID = uuid.New()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	stored := *blog
	r.s.blogs = append(r.s.blogs, &stored)
	return r.s.join(&stored), nil
}

func (r *BlogRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.BlogWithAuthor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Fail != nil {
		return nil, r.s.Fail
	}

	for _, b := range r.s.blogs {
		if b.ID == id {
			return r.s.join(b), nil
		}
	}
	return nil, nil
}

func (r *BlogRepo) List(context.Context) ([]domain.BlogWithAuthor, error) {
	return r.list(func(*domain.Blog) bool { return true })
}

func (r *BlogRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]domain.BlogWithAuthor, error) {
	return r.list(func(b *domain.Blog) bool { return b.AuthorID == authorID })
}

func (r *BlogRepo) list(keep func(*domain.Blog) bool) ([]domain.BlogWithAuthor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.Fail != nil {
		return nil, r.s.Fail
	}

	out := []domain.BlogWithAuthor{}
	for _, b := range r.s.blogs {
		if !keep(b) {
			continue
		}
		if j := r.s.join(b); j != nil {
			out = append(out, *j)
		}
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].CreatedAt.After(out[k].CreatedAt)
	})
	return out, nil
}

// join mirrors the INNER JOIN: a blog without an author is dropped.
func (s *Store) join(b *domain.Blog) *domain.BlogWithAuthor {
	u, ok := s.users[b.AuthorID]
	if !ok {
		return nil
	}
	return &domain.BlogWithAuthor{Blog: *b, AuthorName: u.Name, AuthorEmail: u.Email}
}
