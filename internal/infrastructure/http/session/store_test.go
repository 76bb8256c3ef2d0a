package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"go.uber.org/zap"
)

// SessionStoreTestSuite provides a test suite for cookie sessions
type SessionStoreTestSuite struct {
	suite.Suite
	store *Store
}

func (suite *SessionStoreTestSuite) SetupTest() {
	suite.store = NewStore(time.Hour, false, zap.NewNop())
}

func (suite *SessionStoreTestSuite) TearDownTest() {
	suite.store.Close()
}

func requestWithCookies(resp *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range resp.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func (suite *SessionStoreTestSuite) TestRoundTrip() {
	suite.Run("SavedState_ShouldLoadOnNextRequest", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", nil)

		suite.store.Save(w, r, auth.Session{Authenticated: true, UserID: 1, Username: "leo"})

		loaded := suite.store.Load(requestWithCookies(w))
		assert.True(suite.T(), loaded.Authenticated)
		assert.Equal(suite.T(), int64(1), loaded.UserID)
	})

	suite.Run("NoCookie_ShouldYieldAnonymousSession", func() {
		loaded := suite.store.Load(httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(suite.T(), loaded.Authenticated)
		assert.Zero(suite.T(), loaded.UserID)
	})

	suite.Run("UnknownCookie_ShouldYieldAnonymousSession", func() {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: "forged"})

		loaded := suite.store.Load(r)
		assert.False(suite.T(), loaded.Authenticated)
	})

	suite.Run("TwoBrowsers_ShouldHoldIndependentSessions", func() {
		w1 := httptest.NewRecorder()
		w2 := httptest.NewRecorder()
		suite.store.Save(w1, httptest.NewRequest(http.MethodPost, "/login", nil),
			auth.Session{Authenticated: true, UserID: 1, Username: "leo"})
		suite.store.Save(w2, httptest.NewRequest(http.MethodPost, "/login", nil),
			auth.Session{Authenticated: true, UserID: 2, Username: "dana"})

		assert.Equal(suite.T(), int64(1), suite.store.Load(requestWithCookies(w1)).UserID)
		assert.Equal(suite.T(), int64(2), suite.store.Load(requestWithCookies(w2)).UserID)
	})
}

func (suite *SessionStoreTestSuite) TestDestroy() {
	suite.Run("DestroyedSession_ShouldNotLoadAgain", func() {
		w := httptest.NewRecorder()
		suite.store.Save(w, httptest.NewRequest(http.MethodPost, "/login", nil),
			auth.Session{Authenticated: true, UserID: 1, Username: "leo"})
		r := requestWithCookies(w)

		w2 := httptest.NewRecorder()
		suite.store.Destroy(w2, r)

		loaded := suite.store.Load(r)
		assert.False(suite.T(), loaded.Authenticated)

		// The clearing cookie has a negative max age
		cookies := w2.Result().Cookies()
		require.NotEmpty(suite.T(), cookies)
		assert.Negative(suite.T(), cookies[0].MaxAge)
	})
}

func (suite *SessionStoreTestSuite) TestRotation() {
	suite.Run("Login_ShouldRotateAnonymousSessionID", func() {
		w := httptest.NewRecorder()
		suite.store.Save(w, httptest.NewRequest(http.MethodGet, "/", nil), auth.NewSession())
		anonID := w.Result().Cookies()[0].Value

		w2 := httptest.NewRecorder()
		suite.store.Save(w2, requestWithCookies(w),
			auth.Session{Authenticated: true, UserID: 1, Username: "leo"})
		authID := w2.Result().Cookies()[0].Value

		assert.NotEqual(suite.T(), anonID, authID)

		// The pre-login id is dead and no longer resolves to the account
		stale := httptest.NewRequest(http.MethodGet, "/", nil)
		stale.AddCookie(&http.Cookie{Name: cookieName, Value: anonID})
		assert.False(suite.T(), suite.store.Load(stale).Authenticated)
		assert.Equal(suite.T(), int64(1), suite.store.Load(requestWithCookies(w2)).UserID)
	})

	suite.Run("AuthenticatedResave_ShouldKeepSessionID", func() {
		w := httptest.NewRecorder()
		suite.store.Save(w, httptest.NewRequest(http.MethodPost, "/login", nil),
			auth.Session{Authenticated: true, UserID: 1, Username: "leo"})
		first := w.Result().Cookies()[0].Value

		w2 := httptest.NewRecorder()
		suite.store.Save(w2, requestWithCookies(w),
			auth.Session{Authenticated: true, UserID: 1, Username: "leo"})

		assert.Equal(suite.T(), first, w2.Result().Cookies()[0].Value)
	})
}

func (suite *SessionStoreTestSuite) TestExpiry() {
	suite.Run("ExpiredRecord_ShouldLoadAsAnonymous", func() {
		short := NewStore(time.Millisecond, false, zap.NewNop())
		defer short.Close()

		w := httptest.NewRecorder()
		short.Save(w, httptest.NewRequest(http.MethodPost, "/login", nil),
			auth.Session{Authenticated: true, UserID: 1, Username: "leo"})

		time.Sleep(5 * time.Millisecond)

		loaded := short.Load(requestWithCookies(w))
		assert.False(suite.T(), loaded.Authenticated)
	})
}

func TestSessionStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreTestSuite))
}
