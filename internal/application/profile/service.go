// Package profile provides the read path for profile pages.
package profile

import (
	"context"

	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"go.uber.org/zap"
)

// Service fetches and shapes profile attributes for display.
type Service struct {
	userRepo outbound.UserRepository
	logger   *zap.Logger
}

// NewService creates a new profile service
func NewService(userRepo outbound.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger.Named("profile-service"),
	}
}

// ProfileDTO is the display shape of a profile. Optional attributes are
// null-coalesced to the placeholders the profile page renders.
type ProfileDTO struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profile_pic,omitempty"`
	DateJoined string `json:"date_joined"`
	IsPremium  bool   `json:"is_premium"`
}

// Get fetches the profile for an authenticated session. A session whose
// user no longer exists yields ProfileNotFound; callers treat that as a
// forced logout. Sessions are only re-validated here, not on every read.
func (s *Service) Get(ctx context.Context, sess auth.Session) (*ProfileDTO, error) {
	if !sess.Authenticated {
		return nil, errors.NewUnauthorizedError("Please log in to view your profile")
	}

	u, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("load profile", err)
	}
	if u == nil {
		s.logger.Warn("Stale session: user row missing", zap.Int64("user_id", sess.UserID))
		return nil, errors.NewProfileNotFoundError(sess.UserID)
	}

	dto := &ProfileDTO{
		UserID:     u.ID(),
		Username:   u.Username(),
		Email:      u.Email(),
		FullName:   u.FullName(),
		Bio:        u.Bio(),
		ProfilePic: u.ProfilePic(),
		DateJoined: u.DateJoined(),
		IsPremium:  u.IsPremium(),
	}
	if dto.FullName == "" {
		dto.FullName = "Not set"
	}
	if dto.Bio == "" {
		dto.Bio = "No bio yet"
	}
	return dto, nil
}

// UpdateCommand carries the mutable profile attributes.
type UpdateCommand struct {
	FullName   string `json:"full_name"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profile_pic"`
}

// Update edits the mutable profile attributes of the session's user.
func (s *Service) Update(ctx context.Context, sess auth.Session, cmd UpdateCommand) error {
	if !sess.Authenticated {
		return errors.NewUnauthorizedError("")
	}

	u, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		return errors.NewDatabaseError("load profile", err)
	}
	if u == nil {
		return errors.NewProfileNotFoundError(sess.UserID)
	}

	u.UpdateProfile(cmd.FullName, cmd.Bio, cmd.ProfilePic)
	if err := s.userRepo.Update(ctx, u); err != nil {
		return errors.NewDatabaseError("update profile", err)
	}

	s.logger.Info("Profile updated", zap.Int64("user_id", sess.UserID))
	return nil
}

// IsStaleSession reports whether err means the session points at a user
// that no longer exists. Callers respond by destroying the session.
func IsStaleSession(err error) bool {
	appErr, ok := err.(*errors.AppError)
	return ok && appErr.Code == errors.CodeProfileNotFound
}
