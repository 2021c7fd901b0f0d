package httpapi

import (
	"time"

	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/gameweek"
	"github.com/riskibarqy/fsl-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/prediction"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
	"github.com/riskibarqy/fsl-league/internal/usecase"
)

const dateLayout = "2006-01-02"

type registerUserRequest struct {
	Username       string `json:"username" validate:"required,max=50"`
	Email          string `json:"email" validate:"required,email,max=254"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	FavoriteTeamID string `json:"favorite_team_id" validate:"required"`
}

type selectRosterRequest struct {
	Name      string   `json:"name" validate:"omitempty,max=100"`
	PlayerIDs []string `json:"player_ids" validate:"required,min=1,dive,required"`
}

type transferRequest struct {
	OutPlayerIDs []string `json:"out_player_ids" validate:"required,min=1,dive,required"`
	InPlayerIDs  []string `json:"in_player_ids" validate:"required,min=1,dive,required"`
}

type setCaptainRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type submitPredictionsRequest struct {
	Predictions map[string]string `json:"predictions" validate:"required,min=1,dive,keys,required,endkeys,required"`
}

type createFixtureRequest struct {
	Gameweek    int    `json:"gameweek" validate:"required,gte=1"`
	HomeTeamID  string `json:"home_team_id" validate:"required"`
	AwayTeamID  string `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	KickoffDate string `json:"kickoff_date" validate:"required,datetime=2006-01-02"`
}

type recordResultRequest struct {
	HomeScore   *int           `json:"home_score" validate:"required,gte=0"`
	AwayScore   *int           `json:"away_score" validate:"required,gte=0"`
	Saves       map[string]int `json:"saves" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	Goals       map[string]int `json:"goals" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	Assists     map[string]int `json:"assists" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	YellowCards []string       `json:"yellow_cards" validate:"omitempty,dive,required"`
	RedCards    []string       `json:"red_cards" validate:"omitempty,dive,required"`
}

type uploadPointsRequest struct {
	Points map[string]int `json:"points" validate:"required,min=1,dive,keys,required,endkeys,gte=0"`
}

type teamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type playerDTO struct {
	ID            string  `json:"id"`
	TeamID        string  `json:"team_id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	Price         float64 `json:"price"`
	CurrentPoints int     `json:"current_points"`
	TotalPoints   int     `json:"total_points"`
}

type fixtureDTO struct {
	ID          string `json:"id"`
	Gameweek    int    `json:"gameweek"`
	HomeTeamID  string `json:"home_team_id"`
	AwayTeamID  string `json:"away_team_id"`
	KickoffDate string `json:"kickoff_date"`
}

type matchDTO struct {
	ID          string `json:"id"`
	FixtureID   string `json:"fixture_id"`
	Gameweek    int    `json:"gameweek"`
	HomeTeamID  string `json:"home_team_id"`
	AwayTeamID  string `json:"away_team_id"`
	KickoffDate string `json:"kickoff_date"`
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
}

type statLineDTO struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

type teamStatDTO struct {
	Count   int           `json:"count"`
	Entries []statLineDTO `json:"entries"`
}

type teamBoxScoreDTO struct {
	TeamID   string                 `json:"team_id"`
	TeamName string                 `json:"team_name"`
	Score    int                    `json:"score"`
	Stats    map[string]teamStatDTO `json:"stats"`
}

type matchDetailsDTO struct {
	Match matchDTO        `json:"match"`
	Home  teamBoxScoreDTO `json:"home"`
	Away  teamBoxScoreDTO `json:"away"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type rosterDTO struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Name            string      `json:"name"`
	CaptainID       string      `json:"captain_id,omitempty"`
	TotalPoints     int         `json:"total_points"`
	CurrentPoints   int         `json:"current_points"`
	RemainingBudget float64     `json:"remaining_budget"`
	Players         []playerDTO `json:"players"`
}

type captainDTO struct {
	RosterID  string `json:"roster_id"`
	CaptainID string `json:"captain_id,omitempty"`
	Changed   bool   `json:"changed"`
}

type fantasyTableRowDTO struct {
	Rank          int    `json:"rank"`
	RosterID      string `json:"roster_id"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	TotalPoints   int    `json:"total_points"`
	CurrentPoints int    `json:"current_points"`
}

type userDTO struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FavoriteTeamID string `json:"favorite_team_id"`
	RosterID       string `json:"roster_id"`
	CreatedAt      string `json:"created_at"`
}

type predictionDTO struct {
	FixtureID string `json:"fixture_id"`
	Outcome   string `json:"outcome"`
}

type challengeDTO struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Gameweek    int             `json:"gameweek"`
	Predictions []predictionDTO `json:"predictions"`
}

type gameweekDTO struct {
	Current int `json:"current"`
}

type bonusDTO struct {
	ChallengeID string `json:"challenge_id"`
	UserID      string `json:"user_id"`
	RosterID    string `json:"roster_id"`
	Correct     int    `json:"correct"`
	Points      int    `json:"points"`
}

type gameweekCloseDTO struct {
	ClosedGameweek int        `json:"closed_gameweek"`
	ActiveGameweek int        `json:"active_gameweek"`
	Bonuses        []bonusDTO `json:"bonuses"`
	SkippedFaults  int        `json:"skipped_faults"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, Name: v.Name}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:            v.ID,
		TeamID:        v.TeamID,
		Name:          v.Name,
		Position:      string(v.Position),
		Price:         v.Price.Float(),
		CurrentPoints: v.CurrentPoints,
		TotalPoints:   v.TotalPoints,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:          v.ID,
		Gameweek:    v.Gameweek,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		KickoffDate: v.KickoffDate.Format(dateLayout),
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:          v.ID,
		FixtureID:   v.FixtureID,
		Gameweek:    v.Gameweek,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		KickoffDate: v.KickoffDate.Format(dateLayout),
		HomeScore:   v.HomeScore,
		AwayScore:   v.AwayScore,
	}
}

func matchDetailsToDTO(v usecase.MatchDetails) matchDetailsDTO {
	return matchDetailsDTO{
		Match: matchToDTO(v.Result.Match),
		Home:  boxScoreToDTO(v.Result, v.HomeTeam, v.Result.Match.HomeScore),
		Away:  boxScoreToDTO(v.Result, v.AwayTeam, v.Result.Match.AwayScore),
	}
}

func boxScoreToDTO(result match.Result, t team.Team, score int) teamBoxScoreDTO {
	stats := make(map[string]teamStatDTO, len(match.AllStatTypes))
	for _, stat := range match.AllStatTypes {
		entries := result.StatsFor(t.ID, stat)
		lines := make([]statLineDTO, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, statLineDTO{PlayerID: e.PlayerID, Count: e.Count})
		}
		stats[string(stat)] = teamStatDTO{
			Count:   result.StatsCount(t.ID, stat),
			Entries: lines,
		}
	}
	return teamBoxScoreDTO{
		TeamID:   t.ID,
		TeamName: t.Name,
		Score:    score,
		Stats:    stats,
	}
}

func standingToDTO(v leaguestanding.Standing) standingDTO {
	return standingDTO{
		Position:       v.Position,
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		Played:         v.Played,
		Won:            v.Won,
		Draw:           v.Draw,
		Lost:           v.Lost,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
	}
}

func rosterSnapshotToDTO(v usecase.RosterSnapshot) rosterDTO {
	return rosterDTO{
		ID:              v.Roster.ID,
		UserID:          v.Roster.UserID,
		Name:            v.Roster.Name,
		CaptainID:       v.Roster.CaptainID,
		TotalPoints:     v.Roster.TotalPoints,
		CurrentPoints:   v.CurrentPoints,
		RemainingBudget: v.RemainingBudget.Float(),
		Players:         playersToDTO(v.Players),
	}
}

func userToDTO(u user.User, rosterID string) userDTO {
	return userDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FavoriteTeamID: u.FavoriteTeamID,
		RosterID:       rosterID,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

func challengeToDTO(v prediction.Challenge) challengeDTO {
	items := make([]predictionDTO, 0, len(v.Predictions))
	for _, p := range v.Predictions {
		items = append(items, predictionDTO{FixtureID: p.FixtureID, Outcome: string(p.Outcome)})
	}
	return challengeDTO{
		ID:          v.ID,
		UserID:      v.UserID,
		Gameweek:    v.Gameweek,
		Predictions: items,
	}
}

func transitionToDTO(v gameweek.Transition) gameweekCloseDTO {
	bonuses := make([]bonusDTO, 0, len(v.Bonuses))
	for _, b := range v.Bonuses {
		bonuses = append(bonuses, bonusDTO{
			ChallengeID: b.ChallengeID,
			UserID:      b.UserID,
			RosterID:    b.RosterID,
			Correct:     b.Correct,
			Points:      b.Points,
		})
	}
	return gameweekCloseDTO{
		ClosedGameweek: v.From.Current,
		ActiveGameweek: v.To.Current,
		Bonuses:        bonuses,
		SkippedFaults:  len(v.Faults),
	}
}
