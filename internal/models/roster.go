package models

// RosterEntry represents one player on a team's current roster. Upstream
// fills gaps with placeholders rather than blanks, so the fields are plain
// strings instead of nullable columns.
type RosterEntry struct {
	TeamID   int64  `json:"TEAM_ID"`
	TeamName string `json:"TEAM_NAME"`
	Season   int    `json:"SEASON"`

	PlayerID     int64  `json:"PLAYER_ID"`
	PlayerName   string `json:"PLAYER_NAME"`
	JerseyNumber string `json:"JERSEY_NUMBER"`
	Position     string `json:"POSITION"`
	Height       string `json:"HEIGHT"`
	Weight       string `json:"WEIGHT"`
	Age          int    `json:"AGE"`
	Experience   string `json:"EXP"`
	School       string `json:"SCHOOL"`
	HowAcquired  string `json:"HOW_ACQUIRED"`
}

// Placeholder values for roster fields the upstream feed leaves blank
const (
	UnknownValue      = "Unknown"
	NoJerseyNumber    = "--"
	NoAcquisitionInfo = "No Info"
)

// Normalize fills empty roster fields with their placeholders
func (r *RosterEntry) Normalize() {
	if r.JerseyNumber == "" {
		r.JerseyNumber = NoJerseyNumber
	}
	if r.Position == "" {
		r.Position = UnknownValue
	}
	if r.Height == "" {
		r.Height = UnknownValue
	}
	if r.Weight == "" {
		r.Weight = "0"
	}
	if r.Experience == "" {
		r.Experience = UnknownValue
	}
	if r.School == "" {
		r.School = UnknownValue
	}
	if r.HowAcquired == "" {
		r.HowAcquired = NoAcquisitionInfo
	}
}
