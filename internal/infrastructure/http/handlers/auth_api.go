package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/session"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/security"
	"go.uber.org/zap"
)

// AuthAPIHandlers handles authentication API requests
type AuthAPIHandlers struct {
	authService *auth.Service
	tokens      *security.TokenService
	sessions    *session.Store
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance
func NewAuthAPIHandlers(
	authService *auth.Service,
	tokens *security.TokenService,
	sessions *session.Store,
	logger *zap.Logger,
) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		authService: authService,
		tokens:      tokens,
		sessions:    sessions,
		logger:      logger,
	}
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
	Username    string `json:"username,omitempty"`
	Error       string `json:"error,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd auth.RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeBadRequest(w, "Invalid JSON payload")
		return
	}

	sess, err := h.authService.Register(r.Context(), cmd)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	h.sessions.Save(w, r, sess)
	writeJSON(w, http.StatusCreated, h.authResponse(sess, "Account created"))
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd auth.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeBadRequest(w, "Invalid JSON payload")
		return
	}

	sess, err := h.authService.Login(r.Context(), cmd)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	h.sessions.Save(w, r, sess)
	writeJSON(w, http.StatusOK, h.authResponse(sess, "Logged in"))
}

// Logout handles POST /api/v1/auth/logout. Always succeeds, even for an
// anonymous caller.
func (h *AuthAPIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	current := h.sessions.Load(r)
	_ = h.authService.Logout(current)
	h.sessions.Destroy(w, r)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Logged out",
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthAPIHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    sess,
	})
}

func (h *AuthAPIHandlers) authResponse(sess auth.Session, message string) AuthResponse {
	resp := AuthResponse{
		Success:  true,
		UserID:   sess.UserID,
		Username: sess.Username,
		Message:  message,
	}
	if token, err := h.tokens.Issue(sess.UserID, sess.Username); err == nil {
		resp.AccessToken = token
	} else {
		h.logger.Warn("Token issuance failed", zap.Error(err))
	}
	return resp
}
