package models

// TopPlayer represents one team's leader in a single stat category
type TopPlayer struct {
	TeamAbbr   string  `json:"TEAM_ABBREVIATION"`
	PlayerID   int64   `json:"PLAYER_ID"`
	PlayerName string  `json:"PLAYER_NAME"`
	Stat       string  `json:"STAT"`
	Value      float64 `json:"VALUE"`
	Season     string  `json:"SEASON"`
	ImageURL   string  `json:"PLAYER_IMAGE_URL"`
}
