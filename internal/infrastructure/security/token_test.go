package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TokenServiceTestSuite provides a test suite for JWT issuance
type TokenServiceTestSuite struct {
	suite.Suite
	tokens *TokenService
}

func (suite *TokenServiceTestSuite) SetupSuite() {
	suite.tokens = NewTokenService("test-secret", time.Hour)
}

func (suite *TokenServiceTestSuite) TestIssueAndVerify() {
	suite.Run("IssuedToken_ShouldVerifyWithSameClaims", func() {
		token, err := suite.tokens.Issue(42, "leo")
		require.NoError(suite.T(), err)
		require.NotEmpty(suite.T(), token)

		claims, err := suite.tokens.Verify(token)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), int64(42), claims.UserID)
		assert.Equal(suite.T(), "leo", claims.Username)
		assert.Equal(suite.T(), "leos-kitchen", claims.Issuer)
	})

	suite.Run("TamperedToken_ShouldFailVerification", func() {
		token, err := suite.tokens.Issue(42, "leo")
		require.NoError(suite.T(), err)

		_, err = suite.tokens.Verify(token + "x")
		assert.Error(suite.T(), err)
	})

	suite.Run("WrongSecret_ShouldFailVerification", func() {
		other := NewTokenService("other-secret", time.Hour)
		token, err := other.Issue(42, "leo")
		require.NoError(suite.T(), err)

		_, err = suite.tokens.Verify(token)
		assert.Error(suite.T(), err)
	})

	suite.Run("ExpiredToken_ShouldFailVerification", func() {
		shortLived := NewTokenService("test-secret", time.Nanosecond)
		token, err := shortLived.Issue(42, "leo")
		require.NoError(suite.T(), err)

		time.Sleep(10 * time.Millisecond)

		_, err = suite.tokens.Verify(token)
		assert.Error(suite.T(), err)
	})
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
