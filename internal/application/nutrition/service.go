// Package nutrition provides the daily-log and weekly-summary use cases.
package nutrition

import (
	"context"
	"time"

	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/nutrition"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"go.uber.org/zap"
)

// Service implements nutrition tracking on top of the entry store.
type Service struct {
	repo   outbound.NutritionRepository
	logger *zap.Logger
}

func NewService(repo outbound.NutritionRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.Named("nutrition-service"),
	}
}

// LogCommand contains one day's macro totals.
type LogCommand struct {
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Protein  int    `json:"protein" validate:"min=0"`
	Carbs    int    `json:"carbs" validate:"min=0"`
	Fat      int    `json:"fat" validate:"min=0"`
	Calories int    `json:"calories" validate:"min=0"`
}

// EntryDTO is one logged day.
type EntryDTO struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fat      int    `json:"fat"`
	Calories int    `json:"calories"`
}

// Log records a day's intake for the session's user. An omitted date
// defaults to today.
func (s *Service) Log(ctx context.Context, sess auth.Session, cmd LogCommand) (*EntryDTO, error) {
	if !sess.Authenticated {
		return nil, errors.NewUnauthorizedError("Please log in to track nutrition")
	}

	date := time.Now()
	if cmd.Date != "" {
		parsed, err := time.Parse("2006-01-02", cmd.Date)
		if err != nil {
			return nil, errors.NewValidationError("date must be YYYY-MM-DD")
		}
		date = parsed
	}

	entry, err := nutrition.NewEntry(sess.UserID, date, cmd.Protein, cmd.Carbs, cmd.Fat, cmd.Calories)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	stored, err := s.repo.Add(ctx, entry)
	if err != nil {
		return nil, errors.NewDatabaseError("add nutrition entry", err)
	}

	s.logger.Info("Nutrition entry logged",
		zap.Int64("user_id", sess.UserID),
		zap.String("date", stored.Date.Format("2006-01-02")),
		zap.Int("calories", stored.Calories),
	)
	return entryToDTO(stored), nil
}

// Weekly returns the rolling averages and trend deltas over the user's
// last seven logged days.
func (s *Service) Weekly(ctx context.Context, sess auth.Session) (*nutrition.Summary, error) {
	if !sess.Authenticated {
		return nil, errors.NewUnauthorizedError("Please log in to view your summary")
	}
	entries, err := s.repo.FindRecentByUser(ctx, sess.UserID, 7)
	if err != nil {
		return nil, errors.NewDatabaseError("load nutrition entries", err)
	}
	summary := nutrition.WeeklySummary(entries)
	return &summary, nil
}

// Recent returns the user's latest logged days, newest first.
func (s *Service) Recent(ctx context.Context, sess auth.Session, limit int) ([]EntryDTO, error) {
	if !sess.Authenticated {
		return nil, errors.NewUnauthorizedError("")
	}
	if limit <= 0 || limit > 90 {
		limit = 30
	}
	entries, err := s.repo.FindRecentByUser(ctx, sess.UserID, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("load nutrition entries", err)
	}
	dtos := make([]EntryDTO, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		dtos = append(dtos, *entryToDTO(entries[i]))
	}
	return dtos, nil
}

func entryToDTO(e nutrition.Entry) *EntryDTO {
	return &EntryDTO{
		ID:       e.ID,
		Date:     e.Date.Format("2006-01-02"),
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Fat:      e.Fat,
		Calories: e.Calories,
	}
}
