// Package auth provides the application layer for registration and login.
package auth

import (
	"context"

	"github.com/xiuxiu06/leos-kitchen/internal/domain/user"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"go.uber.org/zap"
)

// Service implements registration, login and logout over the credential
// store. It is a state machine over Session: every call takes nothing but
// its command and returns the resulting Session value.
type Service struct {
	userRepo outbound.UserRepository
	hasher   outbound.PasswordHasher
	logger   *zap.Logger
}

// NewService creates a new auth service
func NewService(
	userRepo outbound.UserRepository,
	hasher outbound.PasswordHasher,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger.Named("auth-service"),
	}
}

// RegisterCommand contains user registration data
type RegisterCommand struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FullName        string `json:"full_name"`
	AgreedToTerms   bool   `json:"agreed_to_terms"`
}

// LoginCommand contains user login data. Identifier is a username or email.
type LoginCommand struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Register creates a new account. Preconditions are checked in order and
// the first failure wins: required fields, email shape, password
// confirmation, terms agreement. Only then is the password hashed and the
// insert attempted; the store's uniqueness constraint decides conflicts.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (Session, error) {
	if cmd.Username == "" || cmd.Email == "" || cmd.Password == "" {
		return NewSession(), errors.NewValidationError("Please fill in all required fields")
	}
	if !user.IsValidEmail(cmd.Email) {
		return NewSession(), errors.NewValidationError("Please enter a valid email address")
	}
	if cmd.Password != cmd.ConfirmPassword {
		return NewSession(), errors.NewValidationError("Passwords don't match")
	}
	if !cmd.AgreedToTerms {
		return NewSession(), errors.NewValidationError("You must agree to the Terms of Service and Privacy Policy")
	}

	newUser, err := user.NewUser(cmd.Username, cmd.Email, s.hasher.Hash(cmd.Password), cmd.FullName)
	if err != nil {
		return NewSession(), errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if err == outbound.ErrDuplicateKey {
			s.logger.Info("Registration conflict", zap.String("username", cmd.Username))
			return NewSession(), errors.NewUserAlreadyExistsError()
		}
		return NewSession(), errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", newUser.ID()),
		zap.String("username", newUser.Username()),
	)

	return authenticated(newUser.ID(), newUser.Username()), nil
}

// Login authenticates by username or email. The failure message never
// reveals whether the identifier exists or the password was wrong.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (Session, error) {
	if cmd.Identifier == "" || cmd.Password == "" {
		return NewSession(), errors.NewValidationError("Please fill in all fields")
	}

	found, err := s.userRepo.FindByIdentifier(ctx, cmd.Identifier)
	if err != nil {
		return NewSession(), errors.NewDatabaseError("look up user", err)
	}
	if found == nil || s.hasher.Hash(cmd.Password) != found.PasswordHash() {
		s.logger.Info("Failed login attempt", zap.String("identifier", cmd.Identifier))
		return NewSession(), errors.NewInvalidCredentialsError()
	}

	s.logger.Info("User logged in",
		zap.Int64("user_id", found.ID()),
		zap.String("username", found.Username()),
	)

	return authenticated(found.ID(), found.Username()), nil
}

// Logout unconditionally resets the session. No store interaction.
func (s *Service) Logout(sess Session) Session {
	if sess.Authenticated {
		s.logger.Info("User logged out", zap.Int64("user_id", sess.UserID))
	}
	return NewSession()
}
