package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/friends-league/models"
)

// MemoryStore keeps tournaments and matches in process memory. It backs
// DATABASE_DRIVER=memory and the service tests.
type MemoryStore struct {
	mu          sync.RWMutex
	tournaments map[string]models.Tournament
	matches     map[string]models.Match
	order       map[string][]string // tournament id -> match ids in insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tournaments: make(map[string]models.Tournament),
		matches:     make(map[string]models.Match),
		order:       make(map[string][]string),
	}
}

func (s *MemoryStore) Tournaments() TournamentRepository { return &memoryTournamentRepository{s: s} }
func (s *MemoryStore) Matches() MatchRepository         { return &memoryMatchRepository{s: s} }
func (s *MemoryStore) TxManager() TxManager             { return &memoryTxManager{s: s} }

// memoryTx collects undo steps; they run in reverse order if the transaction fails.
type memoryTx struct {
	undo []func()
}

type memoryTxKey struct{}

type memoryTxManager struct {
	s *MemoryStore
}

func (m *memoryTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		return fn(ctx)
	}
	tx := &memoryTx{}
	err := fn(context.WithValue(ctx, memoryTxKey{}, tx))
	if err != nil {
		m.s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		m.s.mu.Unlock()
	}
	return err
}

// recordUndo must be called with s.mu held.
func recordUndo(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		tx.undo = append(tx.undo, undo)
	}
}

func cloneTournament(t models.Tournament) models.Tournament {
	t.Teams = append([]string(nil), t.Teams...)
	if t.Winner != nil {
		w := *t.Winner
		t.Winner = &w
	}
	return t
}

func cloneMatch(m models.Match) models.Match {
	m.HomeSource = cloneSlot(m.HomeSource)
	m.AwaySource = cloneSlot(m.AwaySource)
	if m.HomeScore != nil {
		v := *m.HomeScore
		m.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		m.AwayScore = &v
	}
	if m.CompletedAt != nil {
		v := *m.CompletedAt
		m.CompletedAt = &v
	}
	return m
}

func cloneSlot(s *models.SlotRef) *models.SlotRef {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

type memoryTournamentRepository struct {
	s *MemoryStore
}

func (r *memoryTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.tournaments {
		if existing.Owner == t.Owner && existing.Name == t.Name {
			return ErrTournamentNameConflict
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, dup := r.s.tournaments[t.ID]; dup {
		return ErrTournamentNameConflict
	}
	id := t.ID
	r.s.tournaments[id] = cloneTournament(*t)
	recordUndo(ctx, func() { delete(r.s.tournaments, id) })
	return nil
}

func (r *memoryTournamentRepository) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	c := cloneTournament(t)
	return &c, nil
}

func (r *memoryTournamentRepository) ListByOwner(_ context.Context, owner string) ([]models.Tournament, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Tournament, 0)
	for _, t := range r.s.tournaments {
		if t.Owner == owner {
			out = append(out, cloneTournament(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memoryTournamentRepository) update(ctx context.Context, id string, mutate func(t *models.Tournament)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tournaments[id]
	if !ok {
		return ErrTournamentNotFound
	}
	prev := cloneTournament(t)
	mutate(&t)
	r.s.tournaments[id] = t
	recordUndo(ctx, func() { r.s.tournaments[id] = prev })
	return nil
}

func (r *memoryTournamentRepository) UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) error {
	return r.update(ctx, id, func(t *models.Tournament) { t.Status = status })
}

func (r *memoryTournamentRepository) Finalize(ctx context.Context, id string, winner string) error {
	return r.update(ctx, id, func(t *models.Tournament) {
		t.Status = models.StatusFinalized
		t.Winner = &winner
	})
}

type memoryMatchRepository struct {
	s *MemoryStore
}

func (r *memoryMatchRepository) BatchCreate(ctx context.Context, matches []models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range matches {
		if _, ok := r.s.tournaments[matches[i].TournamentID]; !ok {
			return ErrMatchTournamentMissing
		}
	}
	for i := range matches {
		m := &matches[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		id, tid := m.ID, m.TournamentID
		r.s.matches[id] = cloneMatch(*m)
		r.s.order[tid] = append(r.s.order[tid], id)
		recordUndo(ctx, func() {
			delete(r.s.matches, id)
			ids := r.s.order[tid]
			if n := len(ids); n > 0 && ids[n-1] == id {
				r.s.order[tid] = ids[:n-1]
			}
		})
	}
	return nil
}

func (r *memoryMatchRepository) GetByID(_ context.Context, id string) (*models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	c := cloneMatch(m)
	return &c, nil
}

func (r *memoryMatchRepository) ListByTournament(_ context.Context, tournamentID string) ([]models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.order[tournamentID]
	out := make([]models.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneMatch(r.s.matches[id]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchDay < out[j].MatchDay })
	return out, nil
}

func (r *memoryMatchRepository) UpdateResult(ctx context.Context, id string, homeScore, awayScore int, completedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches[id]
	if !ok {
		return ErrMatchNotFound
	}
	prev := cloneMatch(m)
	m.HomeScore, m.AwayScore = &homeScore, &awayScore
	at := completedAt.UTC()
	m.CompletedAt = &at
	r.s.matches[id] = m
	recordUndo(ctx, func() { r.s.matches[id] = prev })
	return nil
}

func (r *memoryMatchRepository) UpdatePlaceholderTeams(ctx context.Context, tournamentID string, source models.SlotRef, team string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var filled int64
	for _, id := range r.s.order[tournamentID] {
		m := r.s.matches[id]
		prev := cloneMatch(m)
		changed := false
		if m.HomeSource != nil && *m.HomeSource == source {
			m.HomeTeam, m.HomeSource = team, nil
			changed = true
			filled++
		}
		if m.AwaySource != nil && *m.AwaySource == source {
			m.AwayTeam, m.AwaySource = team, nil
			changed = true
			filled++
		}
		if changed {
			r.s.matches[id] = m
			mid := id
			recordUndo(ctx, func() { r.s.matches[mid] = prev })
		}
	}
	return filled, nil
}
