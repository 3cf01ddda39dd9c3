package pasetotoken

import (
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := New(Config{
		Mode:       ModeLocal,
		Issuer:     "clinicdesk",
		Audience:   "clinicdesk-api",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}, NewLocalKeys())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestIssueAndVerifyAccess(t *testing.T) {
	m := newTestManager(t)

	tok, err := m.IssueAccess("user-1", "sess-1", "Doctor")
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.Type != TokenTypeAccess {
		t.Errorf("Type = %q, want %q", claims.Type, TokenTypeAccess)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", claims.SessionID)
	}
	if claims.Role != "Doctor" {
		t.Errorf("Role = %q, want Doctor", claims.Role)
	}
	if claims.IsExpired() {
		t.Error("freshly issued token reported as expired")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Verify("v4.local.notatoken"); err == nil {
		t.Error("Verify() accepted a malformed token")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	m1 := newTestManager(t)
	m2 := newTestManager(t)

	tok, err := m1.IssueAccess("user-1", "", "Admin")
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}

	if _, err := m2.Verify(tok); err == nil {
		t.Error("Verify() accepted a token encrypted with a different key")
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := newTestManager(t)

	tok, err := m.IssueRefresh("user-2", "sess-9", "Nurse")
	if err != nil {
		t.Fatalf("IssueRefresh() error = %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Type != TokenTypeRefresh {
		t.Errorf("Type = %q, want %q", claims.Type, TokenTypeRefresh)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing issuer", cfg: Config{Mode: ModeLocal, Audience: "a"}},
		{name: "missing audience", cfg: Config{Mode: ModeLocal, Issuer: "i"}},
		{name: "mode mismatch", cfg: Config{Mode: ModePublic, Issuer: "i", Audience: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, NewLocalKeys()); err == nil {
				t.Error("New() accepted invalid config")
			}
		})
	}
}
