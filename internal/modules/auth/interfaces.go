package auth

import (
	"context"

	"taskboard/internal/domain"
	jwtsvc "taskboard/internal/pkg/jwt"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmailOrName(ctx context.Context, email, name string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	SetRefreshToken(ctx context.Context, userID int64, token *string) error
}

// tokenService is the slice of the jwt service the auth flows need.
type tokenService interface {
	GenerateAccessToken(userID int64) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	ParseRefreshToken(tokenStr string) (*jwtsvc.Claims, error)
	DecodeUserID(tokenStr string) (int64, error)
}
