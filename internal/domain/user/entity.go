// Package user defines the user domain entity
package user

import (
	"regexp"
	"strings"
	"time"
)

// DateJoinedLayout is the storage format of the date_joined column.
const DateJoinedLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User represents a registered account. The identifier is assigned by the
// store on first insert and never changes afterwards.
type User struct {
	id           int64
	username     string
	email        string
	passwordHash string
	fullName     string
	bio          string
	profilePic   string
	dateJoined   string
	isPremium    bool
}

// NewUser creates a new user with validation. The password must already be
// hashed; the entity never sees the plaintext secret.
func NewUser(username, email, passwordHash, fullName string) (*User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if passwordHash == "" {
		return nil, ErrPasswordRequired
	}

	return &User{
		username:     username,
		email:        strings.ToLower(email),
		passwordHash: passwordHash,
		fullName:     fullName,
		dateJoined:   time.Now().Format(DateJoinedLayout),
	}, nil
}

// Reconstitute rebuilds a user from stored attributes without validation.
// Used by the persistence layer when mapping rows back to entities.
func Reconstitute(id int64, username, email, passwordHash, fullName, bio, profilePic, dateJoined string, isPremium bool) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		fullName:     fullName,
		bio:          bio,
		profilePic:   profilePic,
		dateJoined:   dateJoined,
		isPremium:    isPremium,
	}
}

// ID returns the store-assigned identifier, zero before the first insert.
func (u *User) ID() int64 {
	return u.id
}

// SetID records the store-assigned identifier after the first insert.
func (u *User) SetID(id int64) {
	u.id = id
}

// Username returns the public display handle
func (u *User) Username() string {
	return u.username
}

// Email returns the user's email
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the stored digest
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// FullName returns the optional full name, empty when unset
func (u *User) FullName() string {
	return u.fullName
}

// Bio returns the optional bio, empty when unset
func (u *User) Bio() string {
	return u.bio
}

// ProfilePic returns the optional profile picture URL
func (u *User) ProfilePic() string {
	return u.profilePic
}

// DateJoined returns the registration date as YYYY-MM-DD
func (u *User) DateJoined() string {
	return u.dateJoined
}

// IsPremium returns whether the user is a premium member
func (u *User) IsPremium() bool {
	return u.isPremium
}

// UpdateProfile replaces the mutable profile attributes
func (u *User) UpdateProfile(fullName, bio, profilePic string) {
	u.fullName = fullName
	u.bio = bio
	u.profilePic = profilePic
}

// IsValidEmail reports whether s has a local-part@domain.tld shape.
// No deliverability or DNS check is performed.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
