package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-storefront/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrSessionRevoked     = errors.New("session has been signed out")
	ErrInvalidInput       = errors.New("email and password are required")
)

// RoleAdmin is the only role allowed into the dashboard.
const RoleAdmin = "admin"

// EventKind is the type of a session change.
type EventKind string

const (
	SignedIn  EventKind = "signed_in"
	SignedOut EventKind = "signed_out"
)

// Event is delivered to every OnChange listener.
type Event struct {
	Kind   EventKind
	UserID uint
	Email  string
}

// UserStore is the part of the row store sessions need.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Session is a signed-in user with its token.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Sessions signs admins in and out and tracks revoked tokens until they expire.
type Sessions struct {
	users      UserStore
	tokens     *TokenIssuer
	logger     *zap.Logger
	bcryptCost int

	mu        sync.Mutex
	revoked   map[string]time.Time
	listeners []func(Event)
}

func NewSessions(users UserStore, tokens *TokenIssuer, logger *zap.Logger) *Sessions {
	return &Sessions{
		users:      users,
		tokens:     tokens,
		logger:     logger.Named("auth"),
		bcryptCost: bcrypt.DefaultCost,
		revoked:    make(map[string]time.Time),
	}
}

// SetBcryptCost changes the hashing cost used by Register.
func (s *Sessions) SetBcryptCost(cost int) {
	s.bcryptCost = cost
}

// SignIn verifies the password and issues a token. Unknown users and wrong
// passwords fail the same way.
func (s *Sessions) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("auth: find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("signed in", zap.Uint("user_id", user.ID))
	s.emit(Event{Kind: SignedIn, UserID: user.ID, Email: user.Email})

	return &Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Current returns the claims of a valid, unrevoked token.
func (s *Sessions) Current(token string) (*Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// SignOut revokes a token. Signing out an already revoked token is a no-op.
func (s *Sessions) SignOut(token string) error {
	claims, err := s.Current(token)
	if errors.Is(err, ErrSessionRevoked) {
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pruneLocked()
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	s.mu.Unlock()

	s.logger.Info("signed out", zap.Uint("user_id", claims.UserID))
	s.emit(Event{Kind: SignedOut, UserID: claims.UserID, Email: claims.Email})
	return nil
}

// OnChange registers a listener for sign-in and sign-out events.
func (s *Sessions) OnChange(listener func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Register creates an admin account.
func (s *Sessions) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         RoleAdmin,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("auth: create user: %w", err)
	}

	s.logger.Info("registered user", zap.Uint("user_id", user.ID))
	return user, nil
}

func (s *Sessions) emit(e Event) {
	s.mu.Lock()
	listeners := make([]func(Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(e)
	}
}

// pruneLocked forgets revocations of tokens that have expired anyway.
func (s *Sessions) pruneLocked() {
	now := s.tokens.now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
