package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingSecret means the service was constructed without a
	// signing secret. Treated as fatal at startup, never per-request.
	ErrMissingSecret = errors.New("jwt: signing secret is not set")

	// ErrTokenExpired is returned for a well-formed, correctly signed
	// token past its expiry.
	ErrTokenExpired = errors.New("jwt: token expired")

	// ErrTokenInvalid covers everything else: bad signature, wrong
	// structure, wrong signing method.
	ErrTokenInvalid = errors.New("jwt: token invalid")
)

type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Service mints and verifies the two token kinds. Access tokens are
// stateless: signature + expiry fully decide validity. Refresh tokens
// use a separate secret and are additionally matched against the value
// stored on the user record by the auth service.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type Claims struct {
	UserID int64 `json:"user_id"`
	jwtlib.RegisteredClaims
}

func New(cfg Config) (*Service, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}, nil
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Service) GenerateAccessToken(userID int64) (string, error) {
	return generate(userID, s.accessSecret, s.accessTTL)
}

func (s *Service) GenerateRefreshToken(userID int64) (string, error) {
	return generate(userID, s.refreshSecret, s.refreshTTL)
}

func (s *Service) ParseAccessToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, s.accessSecret)
}

func (s *Service) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, s.refreshSecret)
}

// DecodeUserID extracts the user id without verifying the signature or
// expiry. Logout uses this so it can still clear server-side state for
// an already-expired cookie.
func (s *Service) DecodeUserID(tokenStr string) (int64, error) {
	var claims Claims
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return 0, ErrTokenInvalid
	}
	if claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}

func generate(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			// The jti keeps two tokens for the same user distinct even
			// when issued within the same second, so rotation always
			// produces a new value.
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
