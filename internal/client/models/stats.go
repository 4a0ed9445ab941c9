package models

import "encoding/json"

// Stats is the aggregated view of a competition. The time series and
// leaderboards are passed through untouched.
type Stats struct {
	Timeseries  json.RawMessage      `json:"timeseries"`
	Teams       map[string]StatsTeam `json:"teams"`
	Competition StatsCompetition     `json:"competition"`
	Leaderboard json.RawMessage      `json:"leaderboard"`
}

type StatsTeam struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
}

type StatsCompetition struct {
	Name           string          `json:"name"`
	Owner          ID              `json:"owner"`
	Members        []ID            `json:"members"`
	MemberCount    int             `json:"member_count"`
	StartDate      string          `json:"start_date"`
	StartDateCount int             `json:"start_date_count"`
	EndDate        string          `json:"end_date"`
	EndDateCount   int             `json:"end_date_count"`
	HasTeams       bool            `json:"has_teams"`
	Goals          json.RawMessage `json:"goals,omitempty"`
}
