package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// UserTestSuite provides a test suite for the User entity
type UserTestSuite struct {
	suite.Suite
}

func (suite *UserTestSuite) TestUserCreation() {
	suite.Run("ValidUser_ShouldCreateSuccessfully", func() {
		// Arrange
		username := "leo"
		email := "leo@cats.com"
		hash := "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae"

		// Act
		u, err := NewUser(username, email, hash, "Leo the Cat")

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), u)

		assert.Equal(suite.T(), username, u.Username())
		assert.Equal(suite.T(), email, u.Email())
		assert.Equal(suite.T(), hash, u.PasswordHash())
		assert.Zero(suite.T(), u.ID())
		assert.False(suite.T(), u.IsPremium())
		assert.Equal(suite.T(), time.Now().Format(DateJoinedLayout), u.DateJoined())
	})

	suite.Run("UppercaseEmail_ShouldBeLowercased", func() {
		u, err := NewUser("leo", "Leo@Cats.COM", "hash", "")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "leo@cats.com", u.Email())
	})

	suite.Run("MissingUsername_ShouldReturnError", func() {
		u, err := NewUser("", "leo@cats.com", "hash", "")

		assert.ErrorIs(suite.T(), err, ErrUsernameRequired)
		assert.Nil(suite.T(), u)
	})

	suite.Run("MissingEmail_ShouldReturnError", func() {
		u, err := NewUser("leo", "", "hash", "")

		assert.ErrorIs(suite.T(), err, ErrEmailRequired)
		assert.Nil(suite.T(), u)
	})

	suite.Run("MissingPasswordHash_ShouldReturnError", func() {
		u, err := NewUser("leo", "leo@cats.com", "", "")

		assert.ErrorIs(suite.T(), err, ErrPasswordRequired)
		assert.Nil(suite.T(), u)
	})

	suite.Run("MalformedEmail_ShouldReturnError", func() {
		u, err := NewUser("leo", "leo.cats.com", "hash", "")

		assert.ErrorIs(suite.T(), err, ErrInvalidEmail)
		assert.Nil(suite.T(), u)
	})
}

func (suite *UserTestSuite) TestEmailValidation() {
	cases := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"leo@cats.com", true},
		{"first.last+tag@sub.domain.org", true},
		{"USER@EXAMPLE.COM", true},
		{"a@b", false},
		{"a.b.com", false},
		{"", false},
		{"@missing-local.com", false},
		{"missing-at.com", false},
		{"spaced out@domain.com", false},
		{"user@domain.c", false},
	}

	for _, tc := range cases {
		assert.Equal(suite.T(), tc.valid, IsValidEmail(tc.email), "email: %q", tc.email)
	}
}

func (suite *UserTestSuite) TestProfileUpdates() {
	suite.Run("UpdateProfile_ShouldReplaceMutableFields", func() {
		u, err := NewUser("leo", "leo@cats.com", "hash", "")
		require.NoError(suite.T(), err)

		u.UpdateProfile("Leo the Cat", "I like tuna", "https://cdn.example.com/leo.png")

		assert.Equal(suite.T(), "Leo the Cat", u.FullName())
		assert.Equal(suite.T(), "I like tuna", u.Bio())
		assert.Equal(suite.T(), "https://cdn.example.com/leo.png", u.ProfilePic())
	})

	suite.Run("Reconstitute_ShouldPreserveAllAttributes", func() {
		u := Reconstitute(7, "leo", "leo@cats.com", "hash", "Leo", "bio", "pic", "2025-01-15", true)

		assert.Equal(suite.T(), int64(7), u.ID())
		assert.Equal(suite.T(), "2025-01-15", u.DateJoined())
		assert.True(suite.T(), u.IsPremium())
	})
}

func TestUserTestSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}
