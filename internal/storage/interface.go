package storage

import (
	"context"

	"github.com/rlmatchup/rlmatchup-go/internal/model"
)

// Storage defines the interface for tournament persistence.
//
// Implementations hand out snapshot copies: mutating a returned record has
// no effect until it is saved back, which is what makes the ledger's
// read-modify-write cycle safe against incidental aliasing.
type Storage interface {
	SaveTournament(ctx context.Context, t *model.Tournament) error
	GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error)
	DeleteTournament(ctx context.Context, id model.TournamentID) error
	ListTournaments(ctx context.Context) ([]*model.Tournament, error)
	GetTournamentByCode(ctx context.Context, code model.JoinCode) (*model.Tournament, error)
}
