package match

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNegativeScore  = errors.New("score must be non-negative")
	ErrNegativeCount  = errors.New("stat count must be non-negative")
	ErrUnknownPlayer  = errors.New("player is not known")
	ErrForeignPlayer  = errors.New("player does not belong to either team")
	ErrDuplicateCard  = errors.New("player carded more than once")
	ErrInvalidStat    = errors.New("invalid stat type")
	ErrEmptyPlayerRef = errors.New("player id is required")
)

// StatType names one of the five per-match ledgers.
type StatType string

const (
	StatSaves       StatType = "saves"
	StatGoals       StatType = "goals"
	StatAssists     StatType = "assists"
	StatYellowCards StatType = "yellow_cards"
	StatRedCards    StatType = "red_cards"
)

var AllStatTypes = []StatType{StatSaves, StatGoals, StatAssists, StatYellowCards, StatRedCards}

func ParseStatType(raw string) (StatType, error) {
	s := StatType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllStatTypes {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStat, raw)
}

// IsCard reports whether the ledger records presence rather than counts.
func (s StatType) IsCard() bool {
	return s == StatYellowCards || s == StatRedCards
}

// Entry is one player's line in a ledger. Card entries always have Count 1.
type Entry struct {
	PlayerID string
	TeamID   string
	Count    int
}

// Ledger is the box score of one match.
type Ledger struct {
	Saves       []Entry
	Goals       []Entry
	Assists     []Entry
	YellowCards []Entry
	RedCards    []Entry
}

func (l Ledger) Entries(stat StatType) []Entry {
	switch stat {
	case StatSaves:
		return l.Saves
	case StatGoals:
		return l.Goals
	case StatAssists:
		return l.Assists
	case StatYellowCards:
		return l.YellowCards
	case StatRedCards:
		return l.RedCards
	default:
		return nil
	}
}

func (l Ledger) Len() int {
	return len(l.Saves) + len(l.Goals) + len(l.Assists) + len(l.YellowCards) + len(l.RedCards)
}

// Tallies is the raw per-player input for a match result: counts keyed by
// player id for saves, goals and assists, and player id lists for cards.
type Tallies struct {
	Saves       map[string]int
	Goals       map[string]int
	Assists     map[string]int
	YellowCards []string
	RedCards    []string
}

// PlayerIDs lists every player referenced by the tallies, deduplicated.
func (t Tallies) PlayerIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, counts := range []map[string]int{t.Saves, t.Goals, t.Assists} {
		for id := range counts {
			add(id)
		}
	}
	for _, ids := range [][]string{t.YellowCards, t.RedCards} {
		for _, id := range ids {
			add(id)
		}
	}
	sort.Strings(out)
	return out
}

// NewLedger validates tallies against the match's two teams. teamOf maps
// every known player id to its team. Zero counts are dropped and entries are
// ordered by player id so equal input yields an equal ledger.
func NewLedger(m Match, t Tallies, teamOf map[string]string) (Ledger, error) {
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return Ledger{}, fmt.Errorf("%w: %d-%d", ErrNegativeScore, m.HomeScore, m.AwayScore)
	}

	resolve := func(stat StatType, playerID string) (string, error) {
		if strings.TrimSpace(playerID) == "" {
			return "", fmt.Errorf("%w: %s", ErrEmptyPlayerRef, stat)
		}
		teamID, ok := teamOf[playerID]
		if !ok {
			return "", fmt.Errorf("%w: %s in %s", ErrUnknownPlayer, playerID, stat)
		}
		if !m.Involves(teamID) {
			return "", fmt.Errorf("%w: %s in %s", ErrForeignPlayer, playerID, stat)
		}
		return teamID, nil
	}

	counted := func(stat StatType, counts map[string]int) ([]Entry, error) {
		out := make([]Entry, 0, len(counts))
		for playerID, n := range counts {
			if n < 0 {
				return nil, fmt.Errorf("%w: %s has %d %s", ErrNegativeCount, playerID, n, stat)
			}
			teamID, err := resolve(stat, playerID)
			if err != nil {
				return nil, err
			}
			if n == 0 {
				continue
			}
			out = append(out, Entry{PlayerID: playerID, TeamID: teamID, Count: n})
		}
		sortEntries(out)
		return out, nil
	}

	carded := func(stat StatType, ids []string) ([]Entry, error) {
		seen := make(map[string]struct{}, len(ids))
		out := make([]Entry, 0, len(ids))
		for _, playerID := range ids {
			if _, dup := seen[playerID]; dup {
				return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateCard, playerID, stat)
			}
			seen[playerID] = struct{}{}
			teamID, err := resolve(stat, playerID)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{PlayerID: playerID, TeamID: teamID, Count: 1})
		}
		sortEntries(out)
		return out, nil
	}

	var (
		l   Ledger
		err error
	)
	if l.Saves, err = counted(StatSaves, t.Saves); err != nil {
		return Ledger{}, err
	}
	if l.Goals, err = counted(StatGoals, t.Goals); err != nil {
		return Ledger{}, err
	}
	if l.Assists, err = counted(StatAssists, t.Assists); err != nil {
		return Ledger{}, err
	}
	if l.YellowCards, err = carded(StatYellowCards, t.YellowCards); err != nil {
		return Ledger{}, err
	}
	if l.RedCards, err = carded(StatRedCards, t.RedCards); err != nil {
		return Ledger{}, err
	}

	return l, nil
}

func sortEntries(items []Entry) {
	sort.Slice(items, func(i, j int) bool { return items[i].PlayerID < items[j].PlayerID })
}

// Result is a match together with its ledger.
type Result struct {
	Match  Match
	Ledger Ledger
}

// StatsFor returns the entries of one ledger restricted to players of
// teamID. A team that did not play yields nothing.
func (r Result) StatsFor(teamID string, stat StatType) []Entry {
	if !r.Match.Involves(teamID) {
		return nil
	}
	var out []Entry
	for _, e := range r.Ledger.Entries(stat) {
		if e.TeamID == teamID {
			out = append(out, e)
		}
	}
	return out
}

// StatsCount sums counts for saves, goals and assists and counts entries for
// cards.
func (r Result) StatsCount(teamID string, stat StatType) int {
	total := 0
	for _, e := range r.StatsFor(teamID, stat) {
		if stat.IsCard() {
			total++
			continue
		}
		total += e.Count
	}
	return total
}
