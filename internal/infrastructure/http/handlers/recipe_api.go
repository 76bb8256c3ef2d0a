package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	apprecipe "github.com/xiuxiu06/leos-kitchen/internal/application/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/session"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"go.uber.org/zap"
)

// RecipeAPIHandlers handles community feed API requests
type RecipeAPIHandlers struct {
	recipeService *apprecipe.Service
	sessions      *session.Store
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(
	recipeService *apprecipe.Service,
	sessions *session.Store,
	logger *zap.Logger,
) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		sessions:      sessions,
		validate:      validator.New(),
		logger:        logger,
	}
}

// Feed handles GET /api/v1/recipes
func (h *RecipeAPIHandlers) Feed(w http.ResponseWriter, r *http.Request) {
	q := outbound.FeedQuery{
		Search:   r.URL.Query().Get("search"),
		Category: recipe.Category(r.URL.Query().Get("category")),
		SortBy:   recipe.SortOption(r.URL.Query().Get("sort")),
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		q.Offset = offset
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = limit
	}

	page, err := h.recipeService.Feed(r.Context(), q)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: page})
}

// Featured handles GET /api/v1/recipes/featured
func (h *RecipeAPIHandlers) Featured(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.Featured(r.Context(), 3)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: recipes})
}

// Get handles GET /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}
	dto, err := h.recipeService.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: dto})
}

// Share handles POST /api/v1/recipes
func (h *RecipeAPIHandlers) Share(w http.ResponseWriter, r *http.Request) {
	var cmd apprecipe.ShareCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeBadRequest(w, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeBadRequest(w, "Please check the meal details and try again")
		return
	}

	dto, err := h.recipeService.Share(r.Context(), h.sessions.Load(r), cmd)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: dto})
}

// Mine handles GET /api/v1/recipes/mine
func (h *RecipeAPIHandlers) Mine(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.Mine(r.Context(), h.sessions.Load(r))
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: recipes})
}

// Like handles POST /api/v1/recipes/{id}/like
func (h *RecipeAPIHandlers) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}
	if err := h.recipeService.Like(r.Context(), h.sessions.Load(r), id); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Liked"})
}

// Save handles POST /api/v1/recipes/{id}/save
func (h *RecipeAPIHandlers) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}
	if err := h.recipeService.SaveToCollection(r.Context(), h.sessions.Load(r), id); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Saved"})
}

// Unsave handles DELETE /api/v1/recipes/{id}/save
func (h *RecipeAPIHandlers) Unsave(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}
	if err := h.recipeService.RemoveFromCollection(r.Context(), h.sessions.Load(r), id); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Removed"})
}

// Saved handles GET /api/v1/recipes/saved
func (h *RecipeAPIHandlers) Saved(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.Saved(r.Context(), h.sessions.Load(r))
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: recipes})
}

func (h *RecipeAPIHandlers) recipeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "Invalid recipe id")
		return 0, false
	}
	return id, true
}
