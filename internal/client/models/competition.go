package models

type Competition struct {
	ID             ID     `json:"id"`
	Owner          ID     `json:"owner,omitempty"`
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	StartDateFmt   string `json:"start_date_fmt,omitempty"`
	StartDateEpoch int64  `json:"start_date_epoch,omitempty"`
	EndDate        string `json:"end_date"`
	EndDateFmt     string `json:"end_date_fmt,omitempty"`
	EndDateEpoch   int64  `json:"end_date_epoch,omitempty"`
	HasTeams       bool   `json:"has_teams"`
	JoinCode       string `json:"join_code,omitempty"`
}

func (c Competition) Key() ID { return c.ID }

// CompetitionInput is the create/patch body. Nil fields are not sent.
type CompetitionInput struct {
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	HasTeams  *bool   `json:"has_teams,omitempty"`
}
