package domain

import "time"

type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null" validate:"required,email"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`

	// ProfileURL points at the uploaded avatar under /static, nil when
	// the user never uploaded one.
	ProfileURL *string `json:"profile" gorm:"column:profile_url"`

	// RefreshToken holds the last refresh token issued to this user.
	// A presented refresh token must equal this value even when its
	// signature is valid; rotating or clearing it revokes the session.
	RefreshToken *string `json:"-" gorm:"column:refresh_token"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe for transmission: password hash and
// refresh token are stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshToken = nil
	return u
}
