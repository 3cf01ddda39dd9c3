// Package auth implements login for the fixture roster: argon2id password
// checks, paseto token issuance and an in-memory session registry with TTL
// eviction.
package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/pkg/authorize"
	pasetotoken "github.com/clinicdesk/clinicdesk_backend/pkg/paseto"
	"github.com/clinicdesk/clinicdesk_backend/pkg/util/password"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // seconds until the access token expires
}

type UserView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type LoginResult struct {
	Tokens AuthTokens `json:"tokens"`
	User   UserView   `json:"user"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID string) (*UserView, error)

	// SessionAlive is the middleware's liveness check.
	SessionAlive(sessionID string) bool
	// SweepSessions drops sessions that expired before now and returns
	// how many were evicted.
	SweepSessions(now time.Time) int
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type session struct {
	userID    string
	expiresAt time.Time
}

type authService struct {
	byEmail map[string]model.User
	byID    map[string]model.User
	paseto  *pasetotoken.Manager
	authz   authorize.IAuthorization
	ttl     time.Duration

	mu       sync.Mutex
	sessions map[string]session
}

func New(users []model.User, mgr *pasetotoken.Manager, authz authorize.IAuthorization, sessionTTL time.Duration) Service {
	byEmail := make(map[string]model.User, len(users))
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byEmail[strings.ToLower(u.Email)] = u
		byID[u.ID] = u
	}
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	return &authService{
		byEmail:  byEmail,
		byID:     byID,
		paseto:   mgr,
		authz:    authz,
		ttl:      sessionTTL,
		sessions: make(map[string]session),
	}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := password.Verify(u.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	s.mu.Lock()
	s.sessions[sessionID] = session{userID: u.ID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	tokens, err := s.issueTokens(u, sessionID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Tokens: *tokens, User: s.userView(ctx, u)}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.paseto.Verify(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Type != pasetotoken.TokenTypeRefresh {
		return nil, ErrNotRefreshToken
	}

	s.mu.Lock()
	sess, ok := s.sessions[claims.SessionID]
	if ok && time.Now().After(sess.expiresAt) {
		delete(s.sessions, claims.SessionID)
		ok = false
	}
	if ok {
		sess.expiresAt = time.Now().Add(s.ttl)
		s.sessions[claims.SessionID] = sess
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionExpired
	}

	u, found := s.byID[claims.UserID]
	if !found {
		return nil, ErrUserNotFound
	}
	return s.issueTokens(u, claims.SessionID)
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*UserView, error) {
	u, ok := s.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	v := s.userView(ctx, u)
	return &v, nil
}

func (s *authService) SessionAlive(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return false
	}
	return true
}

func (s *authService) SweepSessions(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *authService) issueTokens(u model.User, sessionID string) (*AuthTokens, error) {
	access, err := s.paseto.IssueAccess(u.ID, sessionID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.paseto.IssueRefresh(u.ID, sessionID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.paseto.AccessTTL().Seconds()),
	}, nil
}

func (s *authService) userView(ctx context.Context, u model.User) UserView {
	v := UserView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
	// prefer the enforcer's view when roles were seeded there
	if s.authz != nil {
		if perms, err := s.authz.PermissionsForUser(ctx, u.ID); err == nil && len(perms) > 0 {
			v.Permissions = perms
		}
	}
	return v
}
