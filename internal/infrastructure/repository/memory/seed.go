package memory

import (
	"time"

	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
)

// SeedData is the demo league loaded when no reference sheets are configured.
type SeedData struct {
	Teams    []team.Team
	Players  []player.Player
	Fixtures []fixture.Fixture
}

const (
	TeamIDNorthbridge = "nbr"
	TeamIDRiverside   = "rsd"
	TeamIDHarborCity  = "hbc"
	TeamIDKingsway    = "kgw"
)

func Seed() SeedData {
	return SeedData{
		Teams:    SeedTeams(),
		Players:  SeedPlayers(),
		Fixtures: SeedFixtures(),
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDNorthbridge, Name: "Northbridge Athletic"},
		{ID: TeamIDRiverside, Name: "Riverside FC"},
		{ID: TeamIDHarborCity, Name: "Harbor City"},
		{ID: TeamIDKingsway, Name: "Kingsway Rovers"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "nbr-gk-01", TeamID: TeamIDNorthbridge, Name: "Tomas Rey", Position: player.PositionGoalkeeper, Price: 450},
		{ID: "nbr-def-01", TeamID: TeamIDNorthbridge, Name: "Owen Marsh", Position: player.PositionDefender, Price: 500},
		{ID: "nbr-def-02", TeamID: TeamIDNorthbridge, Name: "Luca Brandt", Position: player.PositionDefender, Price: 550},
		{ID: "nbr-mid-01", TeamID: TeamIDNorthbridge, Name: "Sami Okafor", Position: player.PositionMidfielder, Price: 700},
		{ID: "nbr-fwd-01", TeamID: TeamIDNorthbridge, Name: "Jonah Pike", Position: player.PositionAttacker, Price: 900},
		{ID: "rsd-gk-01", TeamID: TeamIDRiverside, Name: "Ivo Santos", Position: player.PositionGoalkeeper, Price: 450},
		{ID: "rsd-def-01", TeamID: TeamIDRiverside, Name: "Kieran Doyle", Position: player.PositionDefender, Price: 500},
		{ID: "rsd-def-02", TeamID: TeamIDRiverside, Name: "Mateo Ruiz", Position: player.PositionDefender, Price: 550},
		{ID: "rsd-mid-01", TeamID: TeamIDRiverside, Name: "Felix Amara", Position: player.PositionMidfielder, Price: 700},
		{ID: "rsd-fwd-01", TeamID: TeamIDRiverside, Name: "Niko Vale", Position: player.PositionAttacker, Price: 900},
		{ID: "hbc-gk-01", TeamID: TeamIDHarborCity, Name: "Piet Claes", Position: player.PositionGoalkeeper, Price: 450},
		{ID: "hbc-def-01", TeamID: TeamIDHarborCity, Name: "Reza Tan", Position: player.PositionDefender, Price: 500},
		{ID: "hbc-def-02", TeamID: TeamIDHarborCity, Name: "Aaron Voss", Position: player.PositionDefender, Price: 550},
		{ID: "hbc-mid-01", TeamID: TeamIDHarborCity, Name: "Dario Lenz", Position: player.PositionMidfielder, Price: 700},
		{ID: "hbc-fwd-01", TeamID: TeamIDHarborCity, Name: "Yusuf Kane", Position: player.PositionAttacker, Price: 900},
		{ID: "kgw-gk-01", TeamID: TeamIDKingsway, Name: "Emil Lund", Position: player.PositionGoalkeeper, Price: 450},
		{ID: "kgw-def-01", TeamID: TeamIDKingsway, Name: "Caleb Ortiz", Position: player.PositionDefender, Price: 500},
		{ID: "kgw-def-02", TeamID: TeamIDKingsway, Name: "Hugo Ferre", Position: player.PositionDefender, Price: 550},
		{ID: "kgw-mid-01", TeamID: TeamIDKingsway, Name: "Marek Novak", Position: player.PositionMidfielder, Price: 700},
		{ID: "kgw-fwd-01", TeamID: TeamIDKingsway, Name: "Rafa Costa", Position: player.PositionAttacker, Price: 900},
	}
}

func SeedFixtures() []fixture.Fixture {
	week1 := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	week2 := week1.AddDate(0, 0, 7)
	return []fixture.Fixture{
		{ID: "fx-001", Gameweek: 1, HomeTeamID: TeamIDNorthbridge, AwayTeamID: TeamIDRiverside, KickoffDate: week1},
		{ID: "fx-002", Gameweek: 1, HomeTeamID: TeamIDHarborCity, AwayTeamID: TeamIDKingsway, KickoffDate: week1},
		{ID: "fx-003", Gameweek: 2, HomeTeamID: TeamIDRiverside, AwayTeamID: TeamIDHarborCity, KickoffDate: week2},
		{ID: "fx-004", Gameweek: 2, HomeTeamID: TeamIDKingsway, AwayTeamID: TeamIDNorthbridge, KickoffDate: week2},
	}
}

// Load writes data into the store, replacing rows with the same ids.
func (s *Store) Load(data SeedData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range data.Teams {
		s.teams[t.ID] = t
	}
	for _, p := range data.Players {
		s.players[p.ID] = p
	}
	for _, f := range data.Fixtures {
		s.fixtures[f.ID] = f
	}
}
