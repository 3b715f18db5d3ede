package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/friends-league/brackets"
	"github.com/Dosada05/friends-league/models"
)

// Общие ошибки, используемые в сервисах и маппинге HTTP.
var (
	// Ошибки валидации
	ErrInvalidInput           = brackets.ErrInvalidInput
	ErrTournamentNameRequired = fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	ErrStandingsNotAvailable  = fmt.Errorf("%w: standings exist only for league tournaments", ErrInvalidInput)

	// Ошибки отправки результата
	ErrInvalidSubmission     = errors.New("invalid result submission")
	ErrInvalidScore          = fmt.Errorf("%w: scores must be present and non-negative", ErrInvalidSubmission)
	ErrMatchAlreadyCompleted = fmt.Errorf("%w: match is already completed", ErrInvalidSubmission)
	ErrMatchNotReady         = fmt.Errorf("%w: match participants are not decided yet", ErrInvalidSubmission)
	ErrTournamentFinalized   = fmt.Errorf("%w: tournament is already finalized", ErrInvalidSubmission)

	// Ошибки продвижения по сетке
	ErrIncompleteRound    = errors.New("round is not complete")
	ErrTieRequiresReplay  = brackets.ErrTieRequiresReplay
	ErrPartialPropagation = errors.New("placeholder propagation partially failed")

	// Ошибки конфликтов
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
)

// SlotWrite is one placeholder fill: every side waiting on Source becomes Team.
type SlotWrite struct {
	Source models.SlotRef `json:"source"`
	Team   string         `json:"team"`
	Error  string         `json:"error,omitempty"`
}

// PropagationError reports placeholder writes that did not land. The result that
// triggered them is already stored; Resync replays the failed writes.
type PropagationError struct {
	TournamentID string
	Applied      []SlotWrite
	Failed       []SlotWrite
	Err          error
}

func (e *PropagationError) Error() string {
	labels := make([]string, len(e.Failed))
	for i, w := range e.Failed {
		labels[i] = w.Source.Placeholder()
	}
	msg := fmt.Sprintf("%s for tournament %s: %s", ErrPartialPropagation, e.TournamentID, strings.Join(labels, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PropagationError) Is(target error) bool {
	return target == ErrPartialPropagation
}

func (e *PropagationError) Unwrap() error {
	return e.Err
}
