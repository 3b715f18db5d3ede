package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/friends-league/brackets"
	"github.com/Dosada05/friends-league/models"
	"github.com/Dosada05/friends-league/repositories"
	"github.com/Dosada05/friends-league/storage"
)

type SubmitResultInput struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

// ProgressOutcome describes what a submission or a resync changed.
type ProgressOutcome struct {
	Tournament     models.Tournament    `json:"tournament"`
	Match          *models.Match        `json:"match,omitempty"`
	Advanced       []SlotWrite          `json:"advanced,omitempty"`
	Standings      []models.StandingRow `json:"standings,omitempty"`
	Ties           []models.SlotRef     `json:"ties,omitempty"`
	ReplayRequired bool                 `json:"replay_required"`
	Finalized      bool                 `json:"finalized"`
	Winner         *string              `json:"winner,omitempty"`
}

// EventBroadcaster pushes live updates to followers of a tournament.
type EventBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type ProgressionService interface {
	// SubmitResult records a match result and advances the tournament as far as the
	// completed matches allow.
	SubmitResult(ctx context.Context, actor, matchID string, input SubmitResultInput) (*ProgressOutcome, error)
	// Resync recomputes every stage from the stored matches and applies missing writes.
	Resync(ctx context.Context, actor, tournamentID string) (*ProgressOutcome, error)
}

type progressionService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	txManager      repositories.TxManager
	hub            EventBroadcaster
	uploader       storage.FileUploader
	logger         *slog.Logger
	now            func() time.Time
	locks          *keyedMutex
}

// NewProgressionService wires the engine. hub and uploader may be nil.
func NewProgressionService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	txManager repositories.TxManager,
	hub EventBroadcaster,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ProgressionService {
	return &progressionService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		txManager:      txManager,
		hub:            hub,
		uploader:       uploader,
		logger:         loggerOrDefault(logger),
		now:            time.Now,
		locks:          newKeyedMutex(),
	}
}

func (s *progressionService) SubmitResult(ctx context.Context, actor, matchID string, input SubmitResultInput) (*ProgressOutcome, error) {
	if input.HomeScore == nil || input.AwayScore == nil || *input.HomeScore < 0 || *input.AwayScore < 0 {
		return nil, ErrInvalidScore
	}
	home, away := *input.HomeScore, *input.AwayScore

	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, matchID)
	}

	unlock := s.locks.Lock(m.TournamentID)
	defer unlock()

	t, matches, err := s.load(ctx, actor, m.TournamentID)
	if err != nil {
		return nil, err
	}
	if t.IsFinalized() {
		return nil, ErrTournamentFinalized
	}

	match, ok := findMatch(matches, matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if match.HasPendingSlot() {
		return nil, ErrMatchNotReady
	}
	if match.IsCompleted() && !replayable(t, matches, match) {
		return nil, ErrMatchAlreadyCompleted
	}

	completedAt := s.now().UTC()
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.matchRepo.UpdateResult(ctx, matchID, home, away, completedAt); err != nil {
			return handleRepositoryError(err, matchID)
		}
		if t.Status == models.StatusCreated && isValidStatusTransition(t.Status, models.StatusInProgress) {
			if err := s.tournamentRepo.UpdateStatus(ctx, t.ID, models.StatusInProgress); err != nil {
				return handleRepositoryError(err, t.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record result of match %s: %w", matchID, err)
	}
	if t.Status == models.StatusCreated {
		t.Status = models.StatusInProgress
	}

	s.logger.InfoContext(ctx, "match result recorded",
		slog.String("tournament_id", t.ID),
		slog.String("match_id", matchID),
		slog.String("round", match.RoundLabel),
		slog.Int("home_score", home),
		slog.Int("away_score", away),
		slog.Bool("replay", match.IsCompleted()),
	)

	// всегда перечитываем полный набор матчей
	matches, err = s.matchRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload matches of tournament %s: %w", t.ID, err)
	}
	updated, _ := findMatch(matches, matchID)

	outcome, err := s.advance(ctx, t, matches)
	if outcome != nil {
		outcome.Match = &updated
		s.publish(outcome)
	}
	return outcome, err
}

func (s *progressionService) Resync(ctx context.Context, actor, tournamentID string) (*ProgressOutcome, error) {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, matches, err := s.load(ctx, actor, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.IsFinalized() {
		return &ProgressOutcome{Tournament: *t, Finalized: true, Winner: t.Winner}, nil
	}

	s.logger.InfoContext(ctx, "resyncing tournament", slog.String("tournament_id", t.ID))
	outcome, err := s.advance(ctx, t, matches)
	if outcome != nil {
		s.publish(outcome)
	}
	return outcome, err
}

func (s *progressionService) load(ctx context.Context, actor, tournamentID string) (*models.Tournament, []models.Match, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, nil, handleRepositoryError(err, tournamentID)
	}
	if actor == "" || t.Owner != actor {
		return nil, nil, ErrForbiddenOperation
	}
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load matches of tournament %s: %w", tournamentID, err)
	}
	return t, brackets.SortByMatchDay(matches), nil
}

// advance derives the tournament state from matches and writes what is missing.
func (s *progressionService) advance(ctx context.Context, t *models.Tournament, matches []models.Match) (*ProgressOutcome, error) {
	switch t.Format {
	case models.FormatLeague:
		return s.advanceLeague(ctx, t, matches)
	case models.FormatKnockout8:
		return s.advanceKnockout(ctx, t, matches)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidInput, t.Format)
	}
}

func (s *progressionService) advanceLeague(ctx context.Context, t *models.Tournament, matches []models.Match) (*ProgressOutcome, error) {
	out := &ProgressOutcome{Standings: brackets.ComputeStandings(matches, t.Teams)}

	if allCompleted(matches) {
		if leader, ok := brackets.Leader(out.Standings); ok {
			if err := s.finalize(ctx, t, leader.Team, matches, out.Standings); err != nil {
				out.Tournament = *t
				return out, err
			}
			out.Finalized = true
		}
	}
	out.Tournament = *t
	out.Winner = t.Winner
	return out, nil
}

func (s *progressionService) advanceKnockout(ctx context.Context, t *models.Tournament, matches []models.Match) (*ProgressOutcome, error) {
	out := &ProgressOutcome{}

	var writes []SlotWrite
	for _, stage := range []models.Stage{models.StageQF, models.StageSF} {
		resolutions, err := resolveCompleteStage(matches, stage, t.Legs)
		if errors.Is(err, ErrIncompleteRound) {
			continue
		}
		for _, r := range resolutions {
			switch r.Outcome {
			case brackets.OutcomeTied:
				out.Ties = append(out.Ties, r.Slot)
			case brackets.OutcomeResolved:
				if waitingOn(matches, r.Slot) {
					writes = append(writes, SlotWrite{Source: r.Slot, Team: r.Winner})
				}
			}
		}
	}

	applied, propErr := s.applyWrites(ctx, t.ID, writes)
	out.Advanced = applied

	if propErr == nil {
		final, err := resolveCompleteStage(matches, models.StageFinal, t.Legs)
		if err == nil && len(final) == 1 {
			switch final[0].Outcome {
			case brackets.OutcomeTied:
				out.Ties = append(out.Ties, final[0].Slot)
			case brackets.OutcomeResolved:
				if err := s.finalize(ctx, t, final[0].Winner, matches, nil); err != nil {
					out.Tournament = *t
					return out, err
				}
				out.Finalized = true
			}
		}
	}

	out.ReplayRequired = len(out.Ties) > 0
	if out.ReplayRequired {
		s.logger.InfoContext(ctx, "tied pairings need a replay",
			slog.String("tournament_id", t.ID),
			slog.Any("slots", out.Ties),
		)
	}
	out.Tournament = *t
	out.Winner = t.Winner
	if propErr != nil {
		return out, propErr
	}
	return out, nil
}

func (s *progressionService) applyWrites(ctx context.Context, tournamentID string, writes []SlotWrite) ([]SlotWrite, error) {
	var (
		applied, failed []SlotWrite
		errs            []error
	)
	for _, w := range writes {
		var filled int64
		// обе стороны слота заполняются одной транзакцией
		err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
			n, err := s.matchRepo.UpdatePlaceholderTeams(ctx, tournamentID, w.Source, w.Team)
			if err != nil {
				return err
			}
			filled = n
			return nil
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "placeholder write failed",
				slog.String("tournament_id", tournamentID),
				slog.String("slot", w.Source.Label()),
				slog.String("team", w.Team),
				slog.Any("error", err),
			)
			w.Error = err.Error()
			failed = append(failed, w)
			errs = append(errs, err)
			continue
		}
		if filled == 0 {
			s.logger.WarnContext(ctx, "no pending side for slot",
				slog.String("tournament_id", tournamentID),
				slog.String("slot", w.Source.Label()),
			)
			continue
		}
		s.logger.InfoContext(ctx, "team advanced",
			slog.String("tournament_id", tournamentID),
			slog.String("slot", w.Source.Label()),
			slog.String("team", w.Team),
		)
		applied = append(applied, w)
	}

	if len(failed) > 0 {
		return applied, &PropagationError{
			TournamentID: tournamentID,
			Applied:      applied,
			Failed:       failed,
			Err:          errors.Join(errs...),
		}
	}
	return applied, nil
}

func (s *progressionService) finalize(ctx context.Context, t *models.Tournament, winner string, matches []models.Match, standings []models.StandingRow) error {
	if !isValidStatusTransition(t.Status, models.StatusFinalized) {
		return fmt.Errorf("%w: cannot finalize from status %s", ErrInvalidSubmission, t.Status)
	}
	if err := s.tournamentRepo.Finalize(ctx, t.ID, winner); err != nil {
		return fmt.Errorf("failed to finalize tournament %s: %w", t.ID, handleRepositoryError(err, t.ID))
	}
	t.Status = models.StatusFinalized
	t.Winner = &winner

	s.logger.InfoContext(ctx, "tournament finalized",
		slog.String("tournament_id", t.ID),
		slog.String("winner", derefString(t.Winner)),
	)
	s.archive(ctx, *t, matches, standings)
	return nil
}

func (s *progressionService) archive(ctx context.Context, t models.Tournament, matches []models.Match, standings []models.StandingRow) {
	if s.uploader == nil {
		return
	}
	res, err := storage.UploadResultsArchive(ctx, s.uploader, storage.ResultsArchive{
		Tournament: t,
		Matches:    matches,
		Standings:  standings,
		ArchivedAt: s.now().UTC(),
	})
	if err != nil {
		// архив вторичен, турнир уже завершён
		s.logger.ErrorContext(ctx, "failed to archive tournament results",
			slog.String("tournament_id", t.ID),
			slog.Any("error", err),
		)
		return
	}
	s.logger.InfoContext(ctx, "tournament results archived",
		slog.String("tournament_id", t.ID),
		slog.String("location", res.Location),
	)
}

func (s *progressionService) publish(out *ProgressOutcome) {
	if s.hub == nil {
		return
	}
	room := brackets.RoomForTournament(out.Tournament.ID)
	send := func(event string, payload interface{}) {
		s.hub.BroadcastToRoom(room, brackets.WebSocketMessage{Type: event, Payload: payload, RoomID: room})
	}

	if out.Match != nil {
		send(brackets.EventMatchUpdated, out.Match)
	}
	if len(out.Advanced) > 0 {
		send(brackets.EventBracketUpdated, map[string]interface{}{
			"tournament_id": out.Tournament.ID,
			"advanced":      out.Advanced,
		})
	}
	if out.Standings != nil {
		send(brackets.EventStandingsUpdated, out.Standings)
	}
	if out.ReplayRequired {
		send(brackets.EventReplayRequired, out.Ties)
	}
	if out.Finalized {
		send(brackets.EventTournamentFinalized, out.Tournament)
	}
}

// resolveCompleteStage resolves a knockout stage once every slot holds all of its
// legs and every one of them is played.
func resolveCompleteStage(matches []models.Match, stage models.Stage, legs int) ([]brackets.Resolution, error) {
	perSlot := brackets.ExpectedMatches(stage, legs) / stage.Slots()
	played := make(map[models.SlotRef]int, stage.Slots())
	for _, m := range matches {
		if m.Stage() != stage {
			continue
		}
		if !m.IsCompleted() || m.HasPendingSlot() {
			return nil, ErrIncompleteRound
		}
		slot, ok := m.Slot()
		if !ok {
			return nil, ErrIncompleteRound
		}
		played[slot]++
	}
	for i := 1; i <= stage.Slots(); i++ {
		if played[models.SlotRef{Stage: stage, Index: i}] < perSlot {
			return nil, ErrIncompleteRound
		}
	}
	return brackets.ResolveRound(matches, stage), nil
}

// replayable reports whether a completed knockout match belongs to a pairing that is
// currently an unresolved tie.
func replayable(t *models.Tournament, matches []models.Match, match models.Match) bool {
	if t.Format != models.FormatKnockout8 {
		return false
	}
	slot, ok := match.Slot()
	if !ok {
		return false
	}
	var legs []models.Match
	for _, m := range matches {
		if m.RoundLabel == match.RoundLabel {
			legs = append(legs, m)
		}
	}
	return brackets.ResolvePairing(slot, legs).Outcome == brackets.OutcomeTied
}

func waitingOn(matches []models.Match, slot models.SlotRef) bool {
	for _, m := range matches {
		if (m.HomeSource != nil && *m.HomeSource == slot) || (m.AwaySource != nil && *m.AwaySource == slot) {
			return true
		}
	}
	return false
}

func allCompleted(matches []models.Match) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if !m.IsCompleted() {
			return false
		}
	}
	return true
}

func findMatch(matches []models.Match, id string) (models.Match, bool) {
	for _, m := range matches {
		if m.ID == id {
			return m, true
		}
	}
	return models.Match{}, false
}
