package models

import "time"

// TournamentFormat определяет формат турнира.
type TournamentFormat string

const (
	FormatLeague    TournamentFormat = "league"
	FormatKnockout8 TournamentFormat = "knockout8"
)

// KnockoutTeamCount is the only bracket size supported by the knockout format.
const KnockoutTeamCount = 8

func (f TournamentFormat) Valid() bool {
	return f == FormatLeague || f == FormatKnockout8
}

// TournamentStatus представляет состояние турнира.
type TournamentStatus string

const (
	StatusCreated    TournamentStatus = "created"
	StatusInProgress TournamentStatus = "in_progress"
	StatusFinalized  TournamentStatus = "finalized"
)

// Tournament представляет турнир.
type Tournament struct {
	ID        string           `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Owner     string           `json:"owner" db:"owner"`
	Teams     []string         `json:"teams" db:"teams"`
	Format    TournamentFormat `json:"format" db:"format"`
	Legs      int              `json:"legs" db:"legs"` // legs per QF/SF pairing; leagues always store 2
	Status    TournamentStatus `json:"status" db:"status"`
	Winner    *string          `json:"winner,omitempty" db:"winner"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

func (t Tournament) IsFinalized() bool {
	return t.Status == StatusFinalized
}
