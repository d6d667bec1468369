package redis

import (
	"fmt"

	"github.com/rlmatchup/rlmatchup-go/internal/model"
)

// Key prefix for all tournament data
const keyPrefix = "rlmatchup"

// tournamentKey returns the Redis key for a Tournament
func tournamentKey(id model.TournamentID) string {
	return fmt.Sprintf("%s:tournament:%s", keyPrefix, id)
}

// codeIndexKey returns the Redis key for the join code -> tournament id index
func codeIndexKey(code model.JoinCode) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, code)
}

// tournamentSetKey returns the Redis key for the SET of all tournament ids
func tournamentSetKey() string {
	return fmt.Sprintf("%s:idx:tournaments", keyPrefix)
}
