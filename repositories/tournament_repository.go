package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dosada05/friends-league/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict for this owner")
)

type TournamentRepository interface {
	// Create assigns an ID when t.ID is empty.
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	// ListByOwner returns the owner's tournaments, newest first.
	ListByOwner(ctx context.Context, owner string) ([]models.Tournament, error)
	UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) error
	Finalize(ctx context.Context, id string, winner string) error
}

type sqlTournamentRepository struct {
	db *sql.DB
}

func NewSQLTournamentRepository(db *sql.DB) TournamentRepository {
	return &sqlTournamentRepository{db: db}
}

const tournamentColumns = `id, name, owner, teams, format, legs, status, winner, created_at`

func (r *sqlTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	teams, err := json.Marshal(t.Teams)
	if err != nil {
		return fmt.Errorf("failed to encode teams: %w", err)
	}

	query := `
		INSERT INTO tournaments (` + tournamentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = executor(ctx, r.db).ExecContext(ctx, query,
		t.ID, t.Name, t.Owner, string(teams), string(t.Format), t.Legs, string(t.Status), nullable(t.Winner), t.CreatedAt.UTC(),
	)
	return r.handleTournamentError(err)
}

func (r *sqlTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t, err := scanTournament(executor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *sqlTournamentRepository) ListByOwner(ctx context.Context, owner string) ([]models.Tournament, error) {
	query := `
		SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE owner = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *sqlTournamentRepository) UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) error {
	query := `UPDATE tournaments SET status = $1 WHERE id = $2`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, string(status), id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *sqlTournamentRepository) Finalize(ctx context.Context, id string, winner string) error {
	query := `UPDATE tournaments SET status = $1, winner = $2 WHERE id = $3`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, string(models.StatusFinalized), winner, id)
	if err != nil {
		return fmt.Errorf("failed to finalize tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	var (
		t              models.Tournament
		teams          []byte
		format, status string
		winner         sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Owner, &teams, &format, &t.Legs, &status, &winner, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Format = models.TournamentFormat(format)
	t.Status = models.TournamentStatus(status)
	if err := json.Unmarshal(teams, &t.Teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams of tournament %s: %w", t.ID, err)
	}
	if winner.Valid {
		t.Winner = &winner.String
	}
	return &t, nil
}

func (r *sqlTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if classifyConstraint(err) == constraintUnique {
		return ErrTournamentNameConflict
	}
	return err
}
