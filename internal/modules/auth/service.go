package auth

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for authentication and session
// renewal.
type Service struct {
	users  UserRepositoryInterface
	tokens tokenService
}

// Result is a session credential pair plus the sanitized user it was
// issued for.
type Result struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func NewService(users UserRepositoryInterface, tokens tokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest, profileURL *string) (*Result, error) {
	exists, err := s.users.ExistsByEmailOrName(ctx, req.Email, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		ProfileURL:   profileURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is the source of truth under concurrent
		// signups; map its violation back to the conflict error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return s.issueSessionPair(ctx, user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Result, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Issuing a pair rotates the stored refresh token, which kills any
	// other live session for this account.
	return s.issueSessionPair(ctx, user)
}

// Refresh is the single renewal routine used by both the session
// middleware's silent-refresh branch and POST /auth/refresh.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (*Result, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshRaw)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	// The stored token is a single-slot revocation list: a well-signed,
	// unexpired token that is not the one last issued must not mint new
	// credentials.
	if user.RefreshToken == nil || *user.RefreshToken != refreshRaw {
		return nil, ErrRefreshTokenMismatch
	}

	return s.issueSessionPair(ctx, user)
}

// Logout clears the stored refresh token for whichever user the cookie
// decodes to. The token is decoded, not verified, so cleanup still
// works for expired sessions; decode failures are swallowed.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	if strings.TrimSpace(refreshRaw) == "" {
		return nil
	}
	userID, err := s.tokens.DecodeUserID(refreshRaw)
	if err != nil {
		return nil
	}
	return s.users.SetRefreshToken(ctx, userID, nil)
}

// GetSessionUser loads the user a verified access token points at,
// sanitized. A missing row means the account was deleted after the
// token was issued.
func (s *Service) GetSessionUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// issueSessionPair mints both tokens and persists the refresh token on
// the user record, overwriting any prior value. This is the rotation
// point.
func (s *Service) issueSessionPair(ctx context.Context, user *domain.User) (*Result, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, err
	}

	sanitized := user.Sanitized()
	return &Result{
		User:         &sanitized,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
