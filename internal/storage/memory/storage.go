package memory

import (
	"context"
	"sync"

	"github.com/rlmatchup/rlmatchup-go/internal/model"
	"github.com/rlmatchup/rlmatchup-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	tournaments map[model.TournamentID]*model.Tournament
	codeIndex   map[model.JoinCode]model.TournamentID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tournaments: make(map[model.TournamentID]*model.Tournament),
		codeIndex:   make(map[model.JoinCode]model.TournamentID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.ID] = t.Clone()
	s.codeIndex[t.Code] = t.ID
	return nil
}

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, model.ErrTournamentNotFound
	}
	return t.Clone(), nil
}

func (s *Storage) DeleteTournament(ctx context.Context, id model.TournamentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tournaments[id]; ok {
		delete(s.codeIndex, t.Code)
	}
	delete(s.tournaments, id)
	return nil
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (s *Storage) GetTournamentByCode(ctx context.Context, code model.JoinCode) (*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrCodeNotFound
	}
	t, ok := s.tournaments[id]
	if !ok {
		return nil, model.ErrCodeNotFound
	}
	return t.Clone(), nil
}
