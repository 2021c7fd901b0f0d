package usecase

import (
	"testing"

	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
	"github.com/riskibarqy/fsl-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.NewStore()
	store.Load(memory.Seed())
	return store
}

func newTestUserService(store *memory.Store, prefix string) *UserService {
	svc := NewUserService(store.Users(), store.Teams(), idgen.NewSequenceGenerator(prefix), logging.NewNop())
	svc.hashCost = bcrypt.MinCost
	return svc
}

func registerUser(t *testing.T, store *memory.Store, username string) (user.User, fantasy.Roster) {
	t.Helper()

	u, roster, err := newTestUserService(store, username).Register(t.Context(), RegisterUserInput{
		Username:       username,
		Email:          username + "@example.com",
		Password:       "correct-horse",
		FavoriteTeamID: memory.TeamIDNorthbridge,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u, roster
}

func newTestRosterService(store *memory.Store, rules fantasy.Rules) *RosterService {
	return NewRosterService(
		store.Rosters(),
		store.Players(),
		store.Users(),
		rules,
		idgen.NewSequenceGenerator("roster"),
		logging.NewNop(),
		nil,
	)
}

// squadOfTeams lists every seeded player of the given teams in seed order.
func squadOfTeams(teamIDs ...string) []string {
	var out []string
	for _, id := range teamIDs {
		for _, p := range memory.SeedPlayers() {
			if p.TeamID == id {
				out = append(out, p.ID)
			}
		}
	}
	return out
}

func threeTeamSquad() []string {
	return squadOfTeams(memory.TeamIDNorthbridge, memory.TeamIDRiverside, memory.TeamIDHarborCity)
}
