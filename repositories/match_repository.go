package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/friends-league/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentMissing = errors.New("match references a missing tournament")
)

type MatchRepository interface {
	// BatchCreate stores the whole schedule, assigning IDs to matches that have none.
	BatchCreate(ctx context.Context, matches []models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	// ListByTournament returns matches ordered by match day.
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Match, error)
	UpdateResult(ctx context.Context, id string, homeScore, awayScore int, completedAt time.Time) error
	// UpdatePlaceholderTeams fills every side still waiting on source with team and
	// returns how many sides were filled.
	UpdatePlaceholderTeams(ctx context.Context, tournamentID string, source models.SlotRef, team string) (int64, error)
}

type sqlMatchRepository struct {
	db *sql.DB
}

func NewSQLMatchRepository(db *sql.DB) MatchRepository {
	return &sqlMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, round_label, leg, home_team, away_team, home_source, away_source,
	match_day, home_score, away_score, completed_at`

func (r *sqlMatchRepository) BatchCreate(ctx context.Context, matches []models.Match) error {
	exec := executor(ctx, r.db)
	query := `INSERT INTO matches (` + matchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for i := range matches {
		m := &matches[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		var completedAt interface{}
		if m.CompletedAt != nil {
			completedAt = m.CompletedAt.UTC()
		}
		_, err := exec.ExecContext(ctx, query,
			m.ID, m.TournamentID, m.RoundLabel, m.Leg, m.HomeTeam, m.AwayTeam,
			slotLabel(m.HomeSource), slotLabel(m.AwaySource),
			m.MatchDay, nullable(m.HomeScore), nullable(m.AwayScore), completedAt,
		)
		if err != nil {
			return r.handleMatchError(fmt.Errorf("failed to insert match %s (%s): %w", m.ID, m.RoundLabel, err))
		}
	}
	return nil
}

func (r *sqlMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	m, err := scanMatch(executor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *sqlMatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1
		ORDER BY match_day ASC, id ASC`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match: %w", scanErr)
		}
		matches = append(matches, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *sqlMatchRepository) UpdateResult(ctx context.Context, id string, homeScore, awayScore int, completedAt time.Time) error {
	query := `UPDATE matches SET home_score = $1, away_score = $2, completed_at = $3 WHERE id = $4`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, homeScore, awayScore, completedAt.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update result of match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *sqlMatchRepository) UpdatePlaceholderTeams(ctx context.Context, tournamentID string, source models.SlotRef, team string) (int64, error) {
	exec := executor(ctx, r.db)
	label := source.Label()

	var filled int64
	for _, side := range []string{"home", "away"} {
		query := fmt.Sprintf(
			`UPDATE matches SET %[1]s_team = $1, %[1]s_source = NULL WHERE tournament_id = $2 AND %[1]s_source = $3`,
			side,
		)
		result, err := exec.ExecContext(ctx, query, team, tournamentID, label)
		if err != nil {
			return filled, fmt.Errorf("failed to fill %s side from %s: %w", side, label, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return filled, fmt.Errorf("failed to check affected rows: %w", err)
		}
		filled += n
	}
	return filled, nil
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		m                      models.Match
		homeSource, awaySource sql.NullString
		homeScore, awayScore   sql.NullInt64
		completedAt            sql.NullTime
	)
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.RoundLabel, &m.Leg, &m.HomeTeam, &m.AwayTeam,
		&homeSource, &awaySource, &m.MatchDay, &homeScore, &awayScore, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if m.HomeSource, err = parseSlotColumn(homeSource); err != nil {
		return nil, err
	}
	if m.AwaySource, err = parseSlotColumn(awaySource); err != nil {
		return nil, err
	}
	if homeScore.Valid {
		v := int(homeScore.Int64)
		m.HomeScore = &v
	}
	if awayScore.Valid {
		v := int(awayScore.Int64)
		m.AwayScore = &v
	}
	if completedAt.Valid {
		m.CompletedAt = &completedAt.Time
	}
	return &m, nil
}

func slotLabel(s *models.SlotRef) interface{} {
	if s == nil {
		return nil
	}
	return s.Label()
}

func parseSlotColumn(v sql.NullString) (*models.SlotRef, error) {
	if !v.Valid {
		return nil, nil
	}
	slot, err := models.ParseSlotRef(v.String)
	if err != nil {
		return nil, fmt.Errorf("corrupt slot reference: %w", err)
	}
	return &slot, nil
}

func (r *sqlMatchRepository) handleMatchError(err error) error {
	if classifyConstraint(err) == constraintForeignKey {
		return fmt.Errorf("%w: %v", ErrMatchTournamentMissing, err)
	}
	return err
}
