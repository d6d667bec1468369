package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rlmatchup/rlmatchup-go/internal/model"
	"github.com/rlmatchup/rlmatchup-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	key := tournamentKey(t.ID)
	setKey := tournamentSetKey()

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.TournamentTTL)
	pipe.Set(ctx, codeIndexKey(t.Code), string(t.ID), s.cfg.TournamentTTL)
	pipe.SAdd(ctx, setKey, string(t.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	data, err := s.client.Get(ctx, tournamentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTournamentNotFound
		}
		return nil, err
	}

	var t model.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) DeleteTournament(ctx context.Context, id model.TournamentID) error {
	// Fetch first so the code index entry can be removed alongside
	t, err := s.GetTournament(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTournamentNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, tournamentKey(id))
	pipe.Del(ctx, codeIndexKey(t.Code))
	pipe.SRem(ctx, tournamentSetKey(), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	ids, err := s.client.SMembers(ctx, tournamentSetKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Tournament{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = tournamentKey(model.TournamentID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	tournaments := make([]*model.Tournament, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record may have expired; the set entry is stale
		}
		var t model.Tournament
		if err := json.Unmarshal([]byte(val.(string)), &t); err != nil {
			continue // Skip invalid data
		}
		tournaments = append(tournaments, &t)
	}

	return tournaments, nil
}

func (s *Storage) GetTournamentByCode(ctx context.Context, code model.JoinCode) (*model.Tournament, error) {
	idStr, err := s.client.Get(ctx, codeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCodeNotFound
		}
		return nil, err
	}

	t, err := s.GetTournament(ctx, model.TournamentID(idStr))
	if err != nil {
		if errors.Is(err, model.ErrTournamentNotFound) {
			return nil, model.ErrCodeNotFound
		}
		return nil, err
	}
	return t, nil
}
