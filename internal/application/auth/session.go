package auth

// Session is the per-client record of authentication state. It is an
// explicit value passed to and returned from every service call; the
// transport layer owns persisting it across requests.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
}

// NewSession returns the unauthenticated initial state.
func NewSession() Session {
	return Session{}
}

func authenticated(userID int64, username string) Session {
	return Session{
		Authenticated: true,
		UserID:        userID,
		Username:      username,
	}
}
