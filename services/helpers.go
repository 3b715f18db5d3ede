package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/friends-league/models"
	"github.com/Dosada05/friends-league/repositories"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusCreated:    {models.StatusInProgress, models.StatusFinalized},
		models.StatusInProgress: {models.StatusFinalized},
		models.StatusFinalized:  {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

// handleRepositoryError переводит ошибки хранилища в ошибки сервисного слоя.
func handleRepositoryError(err error, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return fmt.Errorf("%w: %s", ErrTournamentNotFound, id)
	case errors.Is(err, repositories.ErrMatchNotFound):
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	default:
		return err
	}
}

func normalizeTeams(teams []string) []string {
	out := make([]string, len(teams))
	for i, t := range teams {
		out[i] = strings.TrimSpace(t)
	}
	return out
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
