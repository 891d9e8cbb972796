// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// TokenProvider signs access tokens. [sec.TokenService] is the production one.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the account and session use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
	now               func() time.Time
}

func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository:    users,
		sessionRepository: sessions,
		tokenProvider:     tokens,
		logger:            logger,
		now:               time.Now,
	}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register creates a writer account. New accounts always get [sec.RoleWriter]
and fall back to the username as display name.

Returns apperr.Conflict when the email (any case) or username is taken.
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)

	if err := taken(service.userRepository.FindByEmail(context, email)); err != nil {
		return nil, withConflict(err, "Email is already registered")
	}
	if err := taken(service.userRepository.FindByUsername(context, username)); err != nil {
		return nil, withConflict(err, "Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := &User{
		ID:           id.String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		Role:         sec.RoleWriter,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("account_registered", slog.String("user_id", user.ID))
	return user, nil
}

var errTaken = apperr.Conflict("taken")

// taken turns a lookup into errTaken when a user exists, nil when none does,
// and passes any other failure through.
func taken(_ *User, err error) error {
	if err == nil {
		return errTaken
	}
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return nil
	}
	return err
}

func withConflict(err error, message string) error {
	if err == errTaken {
		return apperr.Conflict(message)
	}
	return err
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // username or email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is a freshly issued token pair.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates credentials and opens a session.

Unknown accounts and wrong passwords fail with the same message.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}
	if err != nil || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.Warn("login_rejected", slog.String("ip", input.IPAddress))
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issue(context, user, input.UserAgent, input.IPAddress)
}

// Logout revokes the session of refreshToken. Unknown tokens are ignored.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if err := service.sessionRepository.Revoke(context, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	return nil
}

// LogoutAll revokes every refresh session of the user. Access tokens already
// issued stay valid until they expire.
func (service *Service) LogoutAll(context context.Context, userID string) error {
	if err := service.sessionRepository.RevokeAll(context, userID); err != nil {
		return fmt.Errorf("auth: logout all: %w", err)
	}
	service.logger.Info("sessions_revoked", slog.String("user_id", userID))
	return nil
}

// RefreshSession trades a refresh token for a new pair. The presented token is
// consumed atomically, so each one works once.
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.Consume(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("auth: refresh: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	return service.issue(context, user, userAgent, ipAddress)
}

// Me returns the account behind an access token.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

func (service *Service) issue(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: sign access token: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth: refresh token: %w", err)
	}

	now := service.now()
	session := &Session{
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(RefreshTokenTTL),
		CreatedAt: now,
	}
	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth: store session: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		User:                  user,
	}, nil
}
