package models

import (
	"database/sql"
	"time"
)

// TeamStanding represents one team's current league standing
type TeamStanding struct {
	ID       int    `db:"id"`
	TeamID   int64  `db:"team_id"`
	Season   int    `db:"season"`
	TeamName string `db:"team_name"`

	Conference       string `db:"conference"`
	ConferenceRecord string `db:"conference_record"`
	Division         string `db:"division"`
	DivisionRecord   string `db:"division_record"`

	Wins   int             `db:"wins"`
	Losses int             `db:"losses"`
	WinPct sql.NullFloat64 `db:"win_pct"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamStandingInput is used for creating/updating standings from the API
type TeamStandingInput struct {
	TeamID           int64    `json:"TeamID"`
	TeamName         string   `json:"TeamName"`
	Conference       string   `json:"Conference"`
	ConferenceRecord string   `json:"ConferenceRecord"`
	Division         string   `json:"Division"`
	DivisionRecord   string   `json:"DivisionRecord"`
	Wins             int      `json:"WINS"`
	Losses           int      `json:"LOSSES"`
	WinPct           *float64 `json:"WinPCT,omitempty"`
}

// ToTeamStanding converts TeamStandingInput (from API) to TeamStanding model
func (si *TeamStandingInput) ToTeamStanding(season int) *TeamStanding {
	standing := &TeamStanding{
		TeamID:           si.TeamID,
		Season:           season,
		TeamName:         si.TeamName,
		Conference:       si.Conference,
		ConferenceRecord: si.ConferenceRecord,
		Division:         si.Division,
		DivisionRecord:   si.DivisionRecord,
		Wins:             si.Wins,
		Losses:           si.Losses,
	}
	standing.WinPct = nullFloat(si.WinPct)
	return standing
}
