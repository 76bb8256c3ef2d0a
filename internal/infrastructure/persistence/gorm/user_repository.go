package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/xiuxiu06/leos-kitchen/internal/domain/user"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"gorm.io/gorm"
)

// UserRepository implements outbound.UserRepository using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The unique indexes on username and email are
// the authority on duplicates: a constraint violation maps to
// outbound.ErrDuplicateKey and leaves no row behind.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := userToModel(u)
	model.ID = 0

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return outbound.ErrDuplicateKey
		}
		return err
	}

	u.SetID(model.ID)
	return nil
}

// FindByIdentifier resolves the login identifier to a user. An identifier
// containing '@' is treated as an email, anything else as a username.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*user.User, error) {
	column := "username"
	if strings.Contains(identifier, "@") {
		column = "email"
		identifier = strings.ToLower(identifier)
	}

	var model UserModel
	err := r.db.WithContext(ctx).Where(column+" = ?", identifier).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userToEntity(&model), nil
}

// FindByID retrieves a user by id, nil when no row exists
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userToEntity(&model), nil
}

// Update persists profile changes for an existing user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := userToModel(u)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return outbound.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// gorm.ErrDuplicatedKey covers translated drivers; the message check
// covers sqlite, which reports "UNIQUE constraint failed" untranslated.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
