package balancer

import (
	"math"
	"sort"

	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/random"
	"github.com/rlmatchup/rlmatchup-go/internal/model"
)

// Service partitions a pool of rated players into teams. It is stateless;
// given the same inputs and random source it always produces the same
// output, so balanced-mode assignment is fully deterministic.
type Service struct {
	random random.Random
}

// New creates a new balancer service
func New(rnd random.Random) *Service {
	return &Service{random: rnd}
}

// Generate runs the full pipeline for a tournament's registration pool:
// trim the remainder so the pool divides evenly, then assign teams
// according to the balance mode. Trimmed players are returned in removal
// order and never placed back into the pool.
func (s *Service) Generate(players []model.Registration, teamSize int, mode model.BalanceMode) ([]model.Team, []model.Registration) {
	pool, removed := s.Trim(players, teamSize, mode)

	var teams []model.Team
	if mode == model.BalanceModeBalanced {
		teams = s.BalancedTeams(pool, teamSize)
	} else {
		teams = s.RandomTeams(pool, teamSize)
	}
	return teams, removed
}

// Trim removes len(players) % teamSize players so the rest divides evenly.
//
// In balanced mode each removal takes the player whose MMR deviates most
// from the mean of the players still remaining, ties going to the earliest
// registration; the mean is recomputed after every removal. In random mode
// each removal draws a fresh uniform index from the remaining pool.
func (s *Service) Trim(players []model.Registration, teamSize int, mode model.BalanceMode) ([]model.Registration, []model.Registration) {
	pool := make([]model.Registration, len(players))
	copy(pool, players)

	remainder := 0
	if teamSize > 0 {
		remainder = len(pool) % teamSize
	}
	removed := make([]model.Registration, 0, remainder)

	for i := 0; i < remainder; i++ {
		var idx int
		if mode == model.BalanceModeBalanced {
			idx = outlierIndex(pool)
		} else {
			idx = s.random.Intn(len(pool))
		}
		removed = append(removed, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	return pool, removed
}

// outlierIndex returns the index of the player whose MMR has the maximum
// absolute deviation from the pool mean, first occurrence winning ties
func outlierIndex(pool []model.Registration) int {
	sum := 0
	for _, p := range pool {
		sum += p.MMR
	}
	mean := float64(sum) / float64(len(pool))

	best := 0
	for i, p := range pool {
		if math.Abs(float64(p.MMR)-mean) > math.Abs(float64(pool[best].MMR)-mean) {
			best = i
		}
	}
	return best
}

// BalancedTeams partitions a pool into len(pool)/teamSize teams with
// near-equal total skill, honoring manual pre-assignment.
//
// A pre-assigned player whose 1-based team number falls outside the
// generated team range is dropped from every team without error; this
// mirrors how organizers use pre-assignment today and is deliberate.
// Pre-assigned players can also overfill a team past teamSize: placement
// only steers unassigned players toward the emptiest teams, it never
// evicts anyone.
func (s *Service) BalancedTeams(players []model.Registration, teamSize int) []model.Team {
	numTeams := 0
	if teamSize > 0 {
		numTeams = len(players) / teamSize
	}

	teams := make([]model.Team, numTeams)
	for i := range teams {
		teams[i] = model.Team{TeamNumber: i + 1, Players: []model.Registration{}}
	}

	var assigned, unassigned []model.Registration
	for _, p := range players {
		if p.PreAssignedTeam != nil && *p.PreAssignedTeam != 0 {
			assigned = append(assigned, p)
		} else {
			unassigned = append(unassigned, p)
		}
	}

	for _, p := range assigned {
		idx := *p.PreAssignedTeam - 1
		if idx >= 0 && idx < numTeams {
			teams[idx].Players = append(teams[idx].Players, p)
		}
	}

	sort.SliceStable(unassigned, func(i, j int) bool {
		return unassigned[i].MMR > unassigned[j].MMR
	})

	// Snake draft: strongest remaining player onto the team with the
	// fewest players, ties broken by lowest total MMR, then team order.
	for _, p := range unassigned {
		target := -1
		targetCount := 0
		targetMMR := 0
		for i := range teams {
			count := len(teams[i].Players)
			total := teamTotalMMR(teams[i])
			if target == -1 || count < targetCount || (count == targetCount && total < targetMMR) {
				target = i
				targetCount = count
				targetMMR = total
			}
		}
		teams[target].Players = append(teams[target].Players, p)
	}

	for i := range teams {
		teams[i].AvgMMR = roundedAverage(teams[i].Players)
	}

	return teams
}

// RandomTeams partitions a pool into equal-sized teams with no skill
// consideration: uniform shuffle, then consecutive teamSize chunks. Any
// trailing players beyond numTeams*teamSize are dropped silently; in the
// Generate flow the pool is already divisible so nothing is lost.
func (s *Service) RandomTeams(players []model.Registration, teamSize int) []model.Team {
	shuffled := make([]model.Registration, len(players))
	copy(shuffled, players)
	s.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	numTeams := 0
	if teamSize > 0 {
		numTeams = len(shuffled) / teamSize
	}

	teams := make([]model.Team, 0, numTeams)
	for i := 0; i < numTeams; i++ {
		members := shuffled[i*teamSize : (i+1)*teamSize]
		team := model.Team{
			TeamNumber: i + 1,
			Players:    append([]model.Registration{}, members...),
		}
		team.AvgMMR = roundedAverage(team.Players)
		teams = append(teams, team)
	}

	return teams
}

// RecomputeAverages refreshes each team's AvgMMR from its current members.
// Used after a manual team edit overwrites the generated composition.
func RecomputeAverages(teams []model.Team) {
	for i := range teams {
		teams[i].AvgMMR = roundedAverage(teams[i].Players)
	}
}

func teamTotalMMR(t model.Team) int {
	sum := 0
	for _, p := range t.Players {
		sum += p.MMR
	}
	return sum
}

func roundedAverage(players []model.Registration) int {
	if len(players) == 0 {
		return 0
	}
	sum := 0
	for _, p := range players {
		sum += p.MMR
	}
	return int(math.Round(float64(sum) / float64(len(players))))
}
