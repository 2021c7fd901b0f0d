package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
}

type playerTableModel struct {
	PublicID      string `db:"public_id"`
	TeamPublicID  string `db:"team_public_id"`
	Name          string `db:"name"`
	Position      string `db:"position"`
	Price         int64  `db:"price"`
	CurrentPoints int    `db:"current_points"`
	TotalPoints   int    `db:"total_points"`
}

type fixtureTableModel struct {
	PublicID         string    `db:"public_id"`
	Gameweek         int       `db:"gameweek"`
	HomeTeamPublicID string    `db:"home_team_public_id"`
	AwayTeamPublicID string    `db:"away_team_public_id"`
	KickoffDate      time.Time `db:"kickoff_date"`
}

type matchTableModel struct {
	PublicID         string    `db:"public_id"`
	FixturePublicID  string    `db:"fixture_public_id"`
	Gameweek         int       `db:"gameweek"`
	HomeTeamPublicID string    `db:"home_team_public_id"`
	AwayTeamPublicID string    `db:"away_team_public_id"`
	KickoffDate      time.Time `db:"kickoff_date"`
	HomeScore        int       `db:"home_score"`
	AwayScore        int       `db:"away_score"`
}

type matchStatTableModel struct {
	MatchPublicID  string `db:"match_public_id"`
	StatType       string `db:"stat_type"`
	PlayerPublicID string `db:"player_public_id"`
	TeamPublicID   string `db:"team_public_id"`
	Count          int    `db:"count"`
}

type userTableModel struct {
	PublicID             string         `db:"public_id"`
	Username             string         `db:"username"`
	Email                string         `db:"email"`
	PasswordHash         string         `db:"password_hash"`
	FavoriteTeamPublicID sql.NullString `db:"favorite_team_public_id"`
	CreatedAt            time.Time      `db:"created_at"`
}

type rosterTableModel struct {
	PublicID              string         `db:"public_id"`
	UserPublicID          string         `db:"user_public_id"`
	Name                  string         `db:"name"`
	CaptainPlayerPublicID sql.NullString `db:"captain_player_public_id"`
	TotalPoints           int            `db:"total_points"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

type rosterMemberTableModel struct {
	RosterPublicID string `db:"roster_public_id"`
	PlayerPublicID string `db:"player_public_id"`
	Slot           int    `db:"slot"`
}

type challengeTableModel struct {
	PublicID     string `db:"public_id"`
	UserPublicID string `db:"user_public_id"`
	Gameweek     int    `db:"gameweek"`
}

type predictionTableModel struct {
	ChallengePublicID string `db:"challenge_public_id"`
	FixturePublicID   string `db:"fixture_public_id"`
	Outcome           string `db:"outcome"`
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
