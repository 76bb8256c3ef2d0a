package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"github.com/xiuxiu06/leos-kitchen/internal/application/profile"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/user"
	apperrors "github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"github.com/xiuxiu06/leos-kitchen/test/testutils"
	"go.uber.org/zap"
)

// ProfileServiceTestSuite provides a test suite for the profile read path
type ProfileServiceTestSuite struct {
	suite.Suite
	users   *testutils.FakeUserRepository
	service *profile.Service
	ctx     context.Context
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.users = testutils.NewFakeUserRepository()
	suite.service = profile.NewService(suite.users, zap.NewNop())
	suite.ctx = context.Background()
}

// SetupSubTest resets the store per suite.Run subtest; storeUser always
// seeds the same handle and would otherwise collide across subtests
func (suite *ProfileServiceTestSuite) SetupSubTest() {
	suite.SetupTest()
}

func (suite *ProfileServiceTestSuite) storeUser(fullName, bio string) auth.Session {
	u, err := user.NewUser("leo", "leo@cats.com", "digest", fullName)
	require.NoError(suite.T(), err)
	if bio != "" {
		u.UpdateProfile(fullName, bio, "")
	}
	require.NoError(suite.T(), suite.users.Create(suite.ctx, u))
	return auth.Session{Authenticated: true, UserID: u.ID(), Username: u.Username()}
}

func (suite *ProfileServiceTestSuite) TestGet() {
	suite.Run("CompleteProfile_ShouldReturnStoredValues", func() {
		sess := suite.storeUser("Leo the Cat", "I like tuna")

		dto, err := suite.service.Get(suite.ctx, sess)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Leo the Cat", dto.FullName)
		assert.Equal(suite.T(), "I like tuna", dto.Bio)
		assert.Equal(suite.T(), "leo", dto.Username)
		assert.Equal(suite.T(), "leo@cats.com", dto.Email)
	})

	suite.Run("EmptyOptionalFields_ShouldRenderPlaceholders", func() {
		sess := suite.storeUser("", "")

		dto, err := suite.service.Get(suite.ctx, sess)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Not set", dto.FullName)
		assert.Equal(suite.T(), "No bio yet", dto.Bio)
	})

	suite.Run("AnonymousSession_ShouldBeUnauthorized", func() {
		_, err := suite.service.Get(suite.ctx, auth.NewSession())

		require.Error(suite.T(), err)
		appErr := err.(*apperrors.AppError)
		assert.Equal(suite.T(), apperrors.CodeUnauthorized, appErr.Code)
	})

	suite.Run("StaleSession_ShouldYieldProfileNotFound", func() {
		sess := suite.storeUser("Leo", "")
		suite.users.Delete(sess.UserID)

		_, err := suite.service.Get(suite.ctx, sess)

		require.Error(suite.T(), err)
		assert.True(suite.T(), profile.IsStaleSession(err))
		appErr := err.(*apperrors.AppError)
		assert.Equal(suite.T(), apperrors.CodeProfileNotFound, appErr.Code)
	})
}

func (suite *ProfileServiceTestSuite) TestUpdate() {
	suite.Run("ValidUpdate_ShouldPersistAndCoalesceOnRead", func() {
		sess := suite.storeUser("Leo", "old bio")

		err := suite.service.Update(suite.ctx, sess, profile.UpdateCommand{
			FullName: "Leo the Cat",
			Bio:      "",
		})
		require.NoError(suite.T(), err)

		dto, err := suite.service.Get(suite.ctx, sess)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Leo the Cat", dto.FullName)
		assert.Equal(suite.T(), "No bio yet", dto.Bio)
	})

	suite.Run("AnonymousSession_ShouldBeUnauthorized", func() {
		err := suite.service.Update(suite.ctx, auth.NewSession(), profile.UpdateCommand{})

		require.Error(suite.T(), err)
	})

	suite.Run("StaleSession_ShouldYieldProfileNotFound", func() {
		sess := suite.storeUser("Leo", "")
		suite.users.Delete(sess.UserID)

		err := suite.service.Update(suite.ctx, sess, profile.UpdateCommand{FullName: "x"})

		assert.True(suite.T(), profile.IsStaleSession(err))
	})
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
