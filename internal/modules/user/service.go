package user

import (
	"context"
	"strings"

	"taskboard/internal/domain"
)

// UserRepositoryInterface — only the methods the profile service uses.
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// Service contains the business logic for the profile endpoints.
type Service struct {
	users UserRepositoryInterface
}

func NewService(users UserRepositoryInterface) *Service {
	return &Service{users: users}
}

// UpdateProfile changes the display name and/or profile image. Email
// and password cannot be changed here.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name string, profileURL *string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if profileURL != nil {
		u.ProfileURL = profileURL
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	sanitized := u.Sanitized()
	return &sanitized, nil
}
