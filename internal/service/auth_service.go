package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/auth"
	"github.com/unais-08/blogs-fullstack/internal/domain"
	"github.com/unais-08/blogs-fullstack/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken   = apperror.Conflict("User with this email already exists")
	ErrInvalidCreds = apperror.Unauthorized("Invalid email or password")
	ErrUserNotFound = apperror.NotFound("User not found")
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   auth.Hasher
	tokens   *auth.TokenManager
	denylist auth.Denylist
	log      *zap.Logger

	// decoyHash is checked on unknown emails; every failed login costs one Verify.
	decoyOnce sync.Once
	decoyHash string
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.Hasher,
	tokens *auth.TokenManager,
	denylist auth.Denylist,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		log:      log,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  domain.UserResponse `json:"user"`
	Token string              `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}

	// A concurrent registration can still lose the race on the unique index.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperror.KindOf(err) == apperror.KindConflict {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	s.log.Info("user registered", zap.Stringer("user_id", user.ID))

	return &AuthResponse{User: user.ToResponse(), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.hasher.Verify(input.Password, s.decoy())
		return nil, ErrInvalidCreds
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	s.log.Info("user logged in", zap.Stringer("user_id", user.ID))

	return &AuthResponse{User: user.ToResponse(), Token: token}, nil
}

func (s *AuthService) decoy() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.log.Warn("decoy password hash failed", zap.Error(err))
			return
		}
		s.decoyHash = hash
	})
	return s.decoyHash
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := user.ToResponse()
	return &resp, nil
}

// Logout revokes the caller's token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, p auth.Principal) error {
	if err := s.denylist.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return err
	}

	s.log.Info("user logged out", zap.Stringer("user_id", p.UserID))
	return nil
}
