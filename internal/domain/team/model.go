package team

import (
	"fmt"
	"strings"
)

// Team is a real football club taking part in the league.
type Team struct {
	ID   string
	Name string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Row is one line of the teams reference sheet.
type Row struct {
	Name string `validate:"required,max=100"`
}

func NewFromRow(id string, row Row) (Team, error) {
	t := Team{ID: id, Name: strings.TrimSpace(row.Name)}
	if err := t.Validate(); err != nil {
		return Team{}, err
	}
	return t, nil
}

// NameIndex maps case-folded team names to ids.
func NameIndex(items []Team) map[string]string {
	out := make(map[string]string, len(items))
	for _, item := range items {
		out[NormalizeName(item.Name)] = item.ID
	}
	return out
}

func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
