package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotRefreshToken    = errors.New("token is not a refresh token")
	ErrSessionExpired     = errors.New("session expired")
)
