// Package report renders computed analytics as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huddleup/filmroom/internal/analytics"
	"github.com/huddleup/filmroom/internal/filmroom"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
	}))
}

func playerLabel(players map[string]filmroom.Player, id string) string {
	if pl, ok := players[id]; ok {
		return fmt.Sprintf("%s #%d", pl.Name, pl.Jersey)
	}
	return id
}

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }

func dec1(v float64) string { return fmt.Sprintf("%.1f", v) }

func dec2(v float64) string { return fmt.Sprintf("%.2f", v) }

func count(v int) string { return strconv.Itoa(v) }

func posList(p []string) string { return strings.Join(p, "/") }

// PrintTierSummary prints the team's configuration and per-feature flags.
func PrintTierSummary(w io.Writer, cfg filmroom.AnalyticsConfig) {
	fmt.Fprintf(w, "\nTeam: %s  |  Tier: %s  |  Granularity: %s\n\n",
		cfg.TeamID, cfg.Tier, cfg.Granularity)

	table := newTable(w)
	table.Header("FEATURE", "ENABLED")

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	table.Append("drive analytics", onOff(cfg.Features.DriveAnalytics))
	table.Append("player attribution", onOff(cfg.Features.PlayerAttribution))
	table.Append("offensive line", onOff(cfg.Features.LineTracking))
	table.Append("defense", onOff(cfg.Features.DefenseTracking))
	table.Append("situational splits", onOff(cfg.Features.SituationalSplits))
	table.Render()
}

// PrintDriveTable prints the own-offense drive reduction.
func PrintDriveTable(w io.Writer, a analytics.DriveAnalytics) {
	table := newTable(w)
	table.Header("DRIVES", "PTS/DR", "PLAYS/DR", "YDS/DR", "3-OUT%", "RZ-TD%", "SCORE%",
		"TD", "FG", "PUNT", "TO", "DOWNS")
	table.Append(
		count(a.Drives),
		dec2(a.PointsPerDrive),
		dec1(a.PlaysPerDrive),
		dec1(a.YardsPerDrive),
		pct(a.ThreeAndOutRate),
		pct(a.RedZoneTDRate),
		pct(a.ScoringDriveRate),
		count(a.Results.Touchdowns),
		count(a.Results.FieldGoals),
		count(a.Results.Punts),
		count(a.Results.Turnovers),
		count(a.Results.TurnoverOnDowns),
	)
	table.Render()
}

// PrintDefensiveDriveTable prints the opponent-drive reduction.
func PrintDefensiveDriveTable(w io.Writer, a analytics.DefensiveDriveAnalytics) {
	table := newTable(w)
	table.Header("DRIVES", "PTS-ALWD/DR", "YDS-ALWD/DR", "PLAYS/DR", "STOP%", "3-OUT%",
		"TD", "FG", "PUNT", "TO", "DOWNS")
	table.Append(
		count(a.Drives),
		dec2(a.PointsAllowedPerDrive),
		dec1(a.YardsAllowedPerDrive),
		dec1(a.PlaysPerDrive),
		pct(a.StopRate),
		pct(a.ThreeAndOutRate),
		count(a.Results.Touchdowns),
		count(a.Results.FieldGoals),
		count(a.Results.Punts),
		count(a.Results.Turnovers),
		count(a.Results.TurnoverOnDowns),
	)
	table.Render()
}

// PrintAttributionTable prints per-player rushing/passing/receiving lines.
func PrintAttributionTable(w io.Writer, stats []analytics.PlayerAttributionStats, players map[string]filmroom.Player) {
	table := newTable(w)
	table.Header("PLAYER", "CAR", "RU-YDS", "AVG", "RU-TD", "SUCC%",
		"DB", "COMP", "COMP%", "PA-YDS", "PA-TD", "INT", "SACK",
		"TGT", "REC", "CATCH%", "RE-YDS", "RE-TD")

	for _, s := range stats {
		table.Append(
			playerLabel(players, s.PlayerID),
			count(s.Rushing.Carries),
			count(s.Rushing.Yards),
			dec1(s.Rushing.Average),
			count(s.Rushing.Touchdowns),
			pct(s.Rushing.SuccessRate),
			count(s.Passing.Dropbacks),
			count(s.Passing.Completions),
			pct(s.Passing.CompletionRate),
			count(s.Passing.Yards),
			count(s.Passing.Touchdowns),
			count(s.Passing.Interceptions),
			count(s.Passing.Sacks),
			count(s.Receiving.Targets),
			count(s.Receiving.Receptions),
			pct(s.Receiving.CatchRate),
			count(s.Receiving.Yards),
			count(s.Receiving.Touchdowns),
		)
	}
	table.Render()
}

// PrintLineTable prints per-lineman block grading.
func PrintLineTable(w io.Writer, stats []analytics.OffensiveLineStats, players map[string]filmroom.Player) {
	table := newTable(w)
	table.Header("PLAYER", "POS", "ASSIGN", "WINS", "LOSSES", "NEUTRAL", "WIN%", "PEN")

	for _, s := range stats {
		table.Append(
			playerLabel(players, s.PlayerID),
			posList(s.Positions),
			count(s.Assignments),
			count(s.Wins),
			count(s.Losses),
			count(s.Neutral),
			pct(s.WinRate),
			count(s.Penalties),
		)
	}
	table.Render()
}

// PrintDefenseTable prints per-defender production.
func PrintDefenseTable(w io.Writer, stats []analytics.DefensivePlayerStats, players map[string]filmroom.Player) {
	table := newTable(w)
	table.Header("PLAYER", "SNAPS", "TKL", "AST", "MISS", "TOTAL", "PART%",
		"PRESS", "SACKS", "PRESS%", "SACK%", "CV-TGT", "CV-WIN", "CV%")

	for _, s := range stats {
		table.Append(
			playerLabel(players, s.PlayerID),
			count(s.Snaps),
			count(s.TacklesPrimary),
			count(s.TacklesAssist),
			count(s.TacklesMissed),
			count(s.TotalTackles),
			pct(s.TackleParticipation),
			count(s.Pressures),
			count(s.Sacks),
			pct(s.PressureRate),
			pct(s.SackRate),
			count(s.CoverageTargets),
			count(s.CoverageWins),
			pct(s.CoverageSuccessRate),
		)
	}
	table.Render()
}

// PrintSituationalTable prints the non-empty condition splits.
func PrintSituationalTable(w io.Writer, splits []analytics.SituationalSplit) {
	table := newTable(w)
	table.Header("SPLIT", "PLAYS", "YDS", "YDS/PLAY", "SUCC%", "EXPL%")

	for _, s := range splits {
		table.Append(
			s.Label,
			count(s.Plays),
			count(s.Yards),
			dec1(s.YardsPerPlay),
			pct(s.SuccessRate),
			pct(s.ExplosiveRate),
		)
	}
	table.Render()
}

// PrintUnifiedTable prints the merged per-player profiles. Categories a player
// has no data for render as "—".
func PrintUnifiedTable(w io.Writer, rows []analytics.UnifiedPlayerStats) {
	table := newTable(w)
	table.Header("PLAYER", "#", "POS", "OFF PLAYS", "OL WIN%", "DEF SNAPS", "DEF TKL",
		"SNAPS", "TD")

	for _, r := range rows {
		offPlays, olWin, defSnaps, defTkl := "—", "—", "—", "—"
		if r.Offense != nil {
			offPlays = count(r.Offense.Plays())
		}
		if r.OffensiveLine != nil {
			olWin = pct(r.OffensiveLine.WinRate)
		}
		if r.Defense != nil {
			defSnaps = count(r.Defense.Snaps)
			defTkl = count(r.Defense.TotalTackles)
		}
		table.Append(
			r.Name,
			count(r.Jersey),
			posList(r.Positions),
			offPlays,
			olWin,
			defSnaps,
			defTkl,
			count(r.TotalSnaps),
			count(r.TotalTouchdowns),
		)
	}
	table.Render()
}

// PrintRosterTable lists players with their jerseys and positions.
func PrintRosterTable(w io.Writer, players []filmroom.Player) {
	table := newTable(w)
	table.Header("#", "NAME", "POS")

	for _, pl := range players {
		table.Append(count(pl.Jersey), pl.Name, posList(pl.Positions))
	}
	table.Render()
}
