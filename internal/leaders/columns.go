package leaders

// Column names in the master roster snapshot, as supplied by the provider.
const (
	ColPlayerID         = "PLAYER_ID"
	ColPlayerName       = "PLAYER_NAME"
	ColTeamID           = "TEAM_ID"
	ColTeamAbbreviation = "TEAM_ABBREVIATION"
	ColGamesPlayed      = "GP"

	ColMinutes     = "MIN"
	ColPoints      = "PTS"
	ColRebounds    = "REB"
	ColOffRebounds = "OREB"
	ColDefRebounds = "DREB"
	ColAssists     = "AST"
	ColSteals      = "STL"
	ColBlocks      = "BLK"
	ColTurnovers   = "TOV"

	ColFieldGoalsMade      = "FGM"
	ColFieldGoalsAttempted = "FGA"
	ColThreesMade          = "FG3M"
	ColThreesAttempted     = "FG3A"
	ColFreeThrowsMade      = "FTM"
	ColFreeThrowsAttempted = "FTA"

	ColFieldGoalPct = "FG_PCT"
	ColThreePct     = "FG3_PCT"
	ColFreeThrowPct = "FT_PCT"
)

// RosterTextColumns lists the roster snapshot columns that are text rather
// than numeric. Everything else in the snapshot numeric-coerces.
var RosterTextColumns = []string{ColPlayerName, ColTeamAbbreviation}

// RosterColumnOrder is the canonical column order for written snapshots.
var RosterColumnOrder = []string{
	ColPlayerID, ColPlayerName, ColTeamID, ColTeamAbbreviation, ColGamesPlayed,
	ColMinutes, ColPoints, ColRebounds, ColOffRebounds, ColDefRebounds,
	ColAssists, ColSteals, ColBlocks, ColTurnovers,
	ColFieldGoalsMade, ColFieldGoalsAttempted,
	ColThreesMade, ColThreesAttempted,
	ColFreeThrowsMade, ColFreeThrowsAttempted,
	ColFieldGoalPct, ColThreePct, ColFreeThrowPct,
}
