// Package refdata reads the reference sheets of real teams and players.
// Both files carry a header line followed by positional columns:
//
//	teams:   team_name
//	players: name, position, team_name, price
package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
)

const (
	teamColumns   = 1
	playerColumns = 4
)

func ReadTeams(r io.Reader) ([]team.Row, error) {
	records, err := readRecords(r, teamColumns)
	if err != nil {
		return nil, fmt.Errorf("read teams csv: %w", err)
	}
	rows := make([]team.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, team.Row{Name: rec[0]})
	}
	return rows, nil
}

func ReadPlayers(r io.Reader) ([]player.Row, error) {
	records, err := readRecords(r, playerColumns)
	if err != nil {
		return nil, fmt.Errorf("read players csv: %w", err)
	}
	rows := make([]player.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, player.Row{
			Name:     rec[0],
			Position: rec[1],
			TeamName: rec[2],
			Price:    rec[3],
		})
	}
	return rows, nil
}

// LoadFiles reads both sheets. An empty path yields no rows.
func LoadFiles(teamsPath, playersPath string) ([]team.Row, []player.Row, error) {
	var (
		teams   []team.Row
		players []player.Row
	)
	if teamsPath != "" {
		f, err := os.Open(teamsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open teams csv: %w", err)
		}
		teams, err = ReadTeams(f)
		_ = f.Close()
		if err != nil {
			return nil, nil, err
		}
	}
	if playersPath != "" {
		f, err := os.Open(playersPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open players csv: %w", err)
		}
		players, err = ReadPlayers(f)
		_ = f.Close()
		if err != nil {
			return nil, nil, err
		}
	}
	return teams, players, nil
}

func readRecords(r io.Reader, minColumns int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out [][]string
	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}
		if len(rec) < minColumns {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, minColumns, len(rec))
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		out = append(out, rec)
	}
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
