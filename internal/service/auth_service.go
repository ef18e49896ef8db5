package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"cocktail_rig/internal/repository"
)

const defaultTokenTTL = time.Hour

// Operator auth errors.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("operator not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrNoSigningKey    = errors.New("auth signing key is empty")
)

// AuthOptions come from the auth section of the config.
type AuthOptions struct {
	SigningKey string
	TokenTTL   time.Duration
}

// AuthService signs up rig operators and issues their API tokens.
type AuthService struct {
	authRepo repository.Authorization
	key      []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(repo repository.Authorization, opts AuthOptions) *AuthService {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{authRepo: repo, key: []byte(opts.SigningKey), ttl: ttl, now: time.Now}
}

func (s *AuthService) SignUp(username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.New("username is empty")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.authRepo.Create(username, hash)
}

// Claims carries the operator ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken checks credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}
	return s.issueToken(u.ID)
}

// ParseToken validates an HMAC-signed token and returns the operator ID.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	if len(s.key) == 0 {
		return 0, ErrNoSigningKey
	}
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) issueToken(userID int) (string, error) {
	if len(s.key) == 0 {
		return "", ErrNoSigningKey
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.key)
}
