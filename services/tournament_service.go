package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/friends-league/brackets"
	"github.com/Dosada05/friends-league/models"
	"github.com/Dosada05/friends-league/repositories"
)

type CreateTournamentInput struct {
	Name   string                  `json:"name"`
	Teams  []string                `json:"teams"`
	Format models.TournamentFormat `json:"format"`
	// Legs per quarter- and semi-final pairing for knockouts: 1 (default) or 2.
	Legs int `json:"legs,omitempty"`
}

// StageView is one knockout stage with the state of each pairing.
type StageView struct {
	Stage    models.Stage          `json:"stage"`
	Pairings []brackets.Resolution `json:"pairings"`
}

// TournamentView is the public page of a tournament.
type TournamentView struct {
	Tournament models.Tournament    `json:"tournament"`
	Matches    []models.Match       `json:"matches"`
	Standings  []models.StandingRow `json:"standings,omitempty"`
	Bracket    []StageView          `json:"bracket,omitempty"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, owner string, input CreateTournamentInput) (*TournamentView, error)
	ListTournaments(ctx context.Context, owner string) ([]models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*TournamentView, error)
	GetMatches(ctx context.Context, tournamentID string) ([]models.Match, error)
	GetStandings(ctx context.Context, tournamentID string) ([]models.StandingRow, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	txManager      repositories.TxManager
	logger         *slog.Logger
	now            func() time.Time
	rng            *rand.Rand
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	txManager repositories.TxManager,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		txManager:      txManager,
		logger:         loggerOrDefault(logger),
		now:            time.Now,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, owner string, input CreateTournamentInput) (*TournamentView, error) {
	if owner == "" {
		return nil, ErrAuthenticationFailed
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if !input.Format.Valid() {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidInput, input.Format)
	}
	teams := normalizeTeams(input.Teams)

	legs := input.Legs
	switch {
	case input.Format == models.FormatLeague:
		legs = 2
	case legs == 0:
		legs = 1
	}

	t := &models.Tournament{
		Name:      name,
		Owner:     owner,
		Teams:     teams,
		Format:    input.Format,
		Legs:      legs,
		Status:    models.StatusCreated,
		CreatedAt: s.now().UTC(),
	}

	// Расписание строится до записи: ошибки ввода не оставляют следов в хранилище.
	matches, err := brackets.Generate(brackets.GenerateParams{
		Teams:  teams,
		Format: input.Format,
		Legs:   legs,
		Rand:   s.rng,
	})
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tournamentRepo.Create(ctx, t); err != nil {
			return handleRepositoryError(err, t.ID)
		}
		for i := range matches {
			matches[i].TournamentID = t.ID
		}
		if err := s.matchRepo.BatchCreate(ctx, matches); err != nil {
			return fmt.Errorf("failed to save schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", t.ID),
		slog.String("owner", owner),
		slog.String("format", string(t.Format)),
		slog.Int("teams", len(teams)),
		slog.Int("matches", len(matches)),
	)
	return buildView(*t, matches), nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, owner string) ([]models.Tournament, error) {
	if owner == "" {
		return nil, ErrAuthenticationFailed
	}
	list, err := s.tournamentRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments of %s: %w", owner, err)
	}
	return list, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*TournamentView, error) {
	var (
		tournament *models.Tournament
		matches    []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Турнир
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, id)
		if err != nil {
			return handleRepositoryError(err, id)
		}
		tournament = t
		return nil
	})

	// 2. Матчи
	g.Go(func() error {
		m, err := s.matchRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch matches of tournament %s: %w", id, err)
		}
		matches = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buildView(*tournament, matches), nil
}

func (s *tournamentService) GetMatches(ctx context.Context, tournamentID string) ([]models.Match, error) {
	view, err := s.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return view.Matches, nil
}

func (s *tournamentService) GetStandings(ctx context.Context, tournamentID string) ([]models.StandingRow, error) {
	view, err := s.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if view.Tournament.Format != models.FormatLeague {
		return nil, ErrStandingsNotAvailable
	}
	return view.Standings, nil
}

func buildView(t models.Tournament, matches []models.Match) *TournamentView {
	matches = brackets.SortByMatchDay(matches)
	view := &TournamentView{Tournament: t, Matches: matches}

	switch t.Format {
	case models.FormatLeague:
		view.Standings = brackets.ComputeStandings(matches, t.Teams)
	case models.FormatKnockout8:
		for _, stage := range []models.Stage{models.StageQF, models.StageSF, models.StageFinal} {
			view.Bracket = append(view.Bracket, StageView{Stage: stage, Pairings: brackets.ResolveRound(matches, stage)})
		}
	}
	return view
}
