package service

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"cocktail_rig/internal/models"
)

const testSigningKey = "test-signing-key"

// mockAuthRepo is an in-memory repository.Authorization.
type mockAuthRepo struct {
	users    map[string]*models.User
	nextID   int
	getErr   error
	created  []string
	lastHash string
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[string]*models.User{}, nextID: 1}
}

func (m *mockAuthRepo) Create(username, hash string) (int, error) {
	m.created = append(m.created, username)
	m.lastHash = hash
	id := m.nextID
	m.nextID++
	m.users[username] = &models.User{ID: id, Username: username, PasswordHash: hash}
	return id, nil
}

func (m *mockAuthRepo) GetByUsername(username string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[username], nil
}

func newTestAuth(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, AuthOptions{SigningKey: testSigningKey, TokenTTL: time.Minute})
}

func TestAuthService_SignUpHashesPassword(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuth(repo)

	id, err := svc.SignUp("  bartender ", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if id != 1 || len(repo.created) != 1 || repo.created[0] != "bartender" {
		t.Fatalf("unexpected create: id=%d created=%v", id, repo.created)
	}
	if repo.lastHash == "s3cr3t" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.lastHash), []byte("s3cr3t")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_SignUpRejectsEmpty(t *testing.T) {
	svc := newTestAuth(newMockAuthRepo())
	if _, err := svc.SignUp("bob", "   "); err == nil {
		t.Fatalf("expected empty password error")
	}
	if _, err := svc.SignUp(" ", "pw"); err == nil {
		t.Fatalf("expected empty username error")
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuth(repo)
	if _, err := svc.SignUp("alice", "pw"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	tok, err := svc.GenerateToken("alice", "pw")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	uid, err := svc.ParseToken(tok)
	if err != nil || uid != 1 {
		t.Fatalf("ParseToken = %d, %v", uid, err)
	}
}

func TestAuthService_GenerateTokenErrors(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuth(repo)
	_, _ = svc.SignUp("eve", "correct")

	if _, err := svc.GenerateToken("ghost", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
	if _, err := svc.GenerateToken("eve", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("want ErrInvalidPassword, got %v", err)
	}
	repo.getErr = errors.New("query failed")
	if _, err := svc.GenerateToken("eve", "correct"); err == nil {
		t.Fatalf("expected repo error")
	}
}

func TestAuthService_ParseTokenRejects(t *testing.T) {
	svc := newTestAuth(newMockAuthRepo())
	now := time.Now()

	sign := func(method jwt.SigningMethod, key any, exp time.Time) string {
		t.Helper()
		tk := jwt.NewWithClaims(method, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(exp),
				IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Minute)),
			},
			UserID: 5,
		})
		s, err := tk.SignedString(key)
		if err != nil {
			t.Fatalf("SignedString: %v", err)
		}
		return s
	}
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}

	cases := map[string]string{
		"malformed":      "not-a-jwt",
		"other key":      sign(jwt.SigningMethodHS256, []byte("different-key"), now.Add(time.Hour)),
		"expired":        sign(jwt.SigningMethodHS256, []byte(testSigningKey), now.Add(-time.Hour)),
		"non-hmac token": sign(jwt.SigningMethodRS256, rsaKey, now.Add(time.Hour)),
	}
	for name, tok := range cases {
		if _, err := svc.ParseToken(tok); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestAuthService_EmptyKeyRefusesTokens(t *testing.T) {
	repo := newMockAuthRepo()
	svc := NewAuthService(repo, AuthOptions{})
	_, _ = svc.SignUp("alice", "pw")

	if _, err := svc.GenerateToken("alice", "pw"); !errors.Is(err, ErrNoSigningKey) {
		t.Fatalf("want ErrNoSigningKey, got %v", err)
	}
	if _, err := svc.ParseToken("x.y.z"); !errors.Is(err, ErrNoSigningKey) {
		t.Fatalf("want ErrNoSigningKey, got %v", err)
	}
}
