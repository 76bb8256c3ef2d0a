package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/xiuxiu06/leos-kitchen/internal/application/nutrition"
	"github.com/xiuxiu06/leos-kitchen/internal/application/profile"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/session"
	"go.uber.org/zap"
)

// ProfileAPIHandlers handles profile and nutrition tracking requests
type ProfileAPIHandlers struct {
	profileService   *profile.Service
	nutritionService *nutrition.Service
	sessions         *session.Store
	validate         *validator.Validate
	logger           *zap.Logger
}

// NewProfileAPIHandlers creates a new profile API handlers instance
func NewProfileAPIHandlers(
	profileService *profile.Service,
	nutritionService *nutrition.Service,
	sessions *session.Store,
	logger *zap.Logger,
) *ProfileAPIHandlers {
	return &ProfileAPIHandlers{
		profileService:   profileService,
		nutritionService: nutritionService,
		sessions:         sessions,
		validate:         validator.New(),
		logger:           logger,
	}
}

// Get handles GET /api/v1/profile. A stale session is destroyed before
// the error response goes out, forcing a clean login.
func (h *ProfileAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	dto, err := h.profileService.Get(r.Context(), sess)
	if err != nil {
		if profile.IsStaleSession(err) {
			h.sessions.Destroy(w, r)
		}
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// Update handles PUT /api/v1/profile
func (h *ProfileAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var cmd profile.UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeBadRequest(w, "Invalid JSON payload")
		return
	}

	if err := h.profileService.Update(r.Context(), h.sessions.Load(r), cmd); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Profile updated"})
}

// LogNutrition handles POST /api/v1/nutrition
func (h *ProfileAPIHandlers) LogNutrition(w http.ResponseWriter, r *http.Request) {
	var cmd nutrition.LogCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeBadRequest(w, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeBadRequest(w, "Nutrition values must be non-negative and the date YYYY-MM-DD")
		return
	}

	entry, err := h.nutritionService.Log(r.Context(), h.sessions.Load(r), cmd)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: entry})
}

// WeeklySummary handles GET /api/v1/nutrition/summary
func (h *ProfileAPIHandlers) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.nutritionService.Weekly(r.Context(), h.sessions.Load(r))
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: summary})
}

// RecentNutrition handles GET /api/v1/nutrition
func (h *ProfileAPIHandlers) RecentNutrition(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = v
	}
	entries, err := h.nutritionService.Recent(r.Context(), h.sessions.Load(r), limit)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: entries})
}
