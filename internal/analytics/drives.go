package analytics

import (
	"context"
	"fmt"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// DriveResultCounts tallies how drives ended.
type DriveResultCounts struct {
	Touchdowns      int `json:"touchdowns"`
	FieldGoals      int `json:"fieldGoals"`
	Punts           int `json:"punts"`
	Turnovers       int `json:"turnovers"`
	TurnoverOnDowns int `json:"turnoverOnDowns"`
}

// DriveAnalytics summarizes the team's own possessions. Rates are percents;
// a team with no tagged drives gets a valid all-zero record.
type DriveAnalytics struct {
	Drives           int               `json:"drives"`
	PointsPerDrive   float64           `json:"pointsPerDrive"`
	PlaysPerDrive    float64           `json:"playsPerDrive"`
	YardsPerDrive    float64           `json:"yardsPerDrive"`
	ThreeAndOutRate  float64           `json:"threeAndOutRate"`
	RedZoneTDRate    float64           `json:"redZoneTouchdownRate"`
	ScoringDriveRate float64           `json:"scoringDriveRate"`
	Results          DriveResultCounts `json:"results"`
}

// DefensiveDriveAnalytics summarizes opponent possessions from the
// defense's point of view. A stop is any opponent drive that did not score.
type DefensiveDriveAnalytics struct {
	Drives                int               `json:"drives"`
	PointsAllowedPerDrive float64           `json:"pointsAllowedPerDrive"`
	YardsAllowedPerDrive  float64           `json:"yardsAllowedPerDrive"`
	PlaysPerDrive         float64           `json:"playsPerDrive"`
	StopRate              float64           `json:"stopRate"`
	ThreeAndOutRate       float64           `json:"threeAndOutRate"`
	Results               DriveResultCounts `json:"results"`
}

// DriveAnalytics computes offensive drive efficiency for a team, optionally
// scoped to one game.
func (s *Service) DriveAnalytics(ctx context.Context, teamID, gameID string) (DriveAnalytics, error) {
	if _, err := s.requireFeature(ctx, teamID, FeatureDriveAnalytics); err != nil {
		return DriveAnalytics{}, err
	}
	videos, err := s.videoScope(ctx, gameID)
	if err != nil {
		return DriveAnalytics{}, err
	}
	drives, err := s.store.TeamDrives(ctx, teamID, videos, false)
	if err != nil {
		return DriveAnalytics{}, fmt.Errorf("fetching drives: %w", err)
	}
	return reduceDrives(drives), nil
}

// DefensiveDriveAnalytics is the same reduction over opponent drives.
func (s *Service) DefensiveDriveAnalytics(ctx context.Context, teamID, gameID string) (DefensiveDriveAnalytics, error) {
	if _, err := s.requireFeature(ctx, teamID, FeatureDriveAnalytics); err != nil {
		return DefensiveDriveAnalytics{}, err
	}
	videos, err := s.videoScope(ctx, gameID)
	if err != nil {
		return DefensiveDriveAnalytics{}, err
	}
	drives, err := s.store.TeamDrives(ctx, teamID, videos, true)
	if err != nil {
		return DefensiveDriveAnalytics{}, fmt.Errorf("fetching opponent drives: %w", err)
	}
	return reduceOpponentDrives(drives), nil
}

func reduceDrives(drives []filmroom.Drive) DriveAnalytics {
	out := DriveAnalytics{Drives: len(drives)}
	if len(drives) == 0 {
		return out
	}

	var points, plays, yards, threeOuts, redZone, redZoneTDs, scoring int
	for _, d := range drives {
		points += d.Points
		plays += d.PlayCount
		yards += d.Yards
		if d.ThreeAndOut {
			threeOuts++
		}
		if d.ReachedRedZone {
			redZone++
			if d.Result == filmroom.DriveTouchdown {
				redZoneTDs++
			}
		}
		if d.Scoring {
			scoring++
		}
		countDriveResult(&out.Results, d.Result)
	}

	n := float64(len(drives))
	out.PointsPerDrive = float64(points) / n
	out.PlaysPerDrive = float64(plays) / n
	out.YardsPerDrive = float64(yards) / n
	out.ThreeAndOutRate = float64(threeOuts) / n * 100
	out.ScoringDriveRate = float64(scoring) / n * 100
	// Red-zone conversion is judged only against drives that got there.
	if redZone > 0 {
		out.RedZoneTDRate = float64(redZoneTDs) / float64(redZone) * 100
	}
	return out
}

func reduceOpponentDrives(drives []filmroom.Drive) DefensiveDriveAnalytics {
	out := DefensiveDriveAnalytics{Drives: len(drives)}
	if len(drives) == 0 {
		return out
	}

	var points, plays, yards, threeOuts, stops int
	for _, d := range drives {
		points += d.Points
		plays += d.PlayCount
		yards += d.Yards
		if d.ThreeAndOut {
			threeOuts++
		}
		if !d.Scoring {
			stops++
		}
		countDriveResult(&out.Results, d.Result)
	}

	n := float64(len(drives))
	out.PointsAllowedPerDrive = float64(points) / n
	out.YardsAllowedPerDrive = float64(yards) / n
	out.PlaysPerDrive = float64(plays) / n
	out.StopRate = float64(stops) / n * 100
	out.ThreeAndOutRate = float64(threeOuts) / n * 100
	return out
}

func countDriveResult(c *DriveResultCounts, result string) {
	switch result {
	case filmroom.DriveTouchdown:
		c.Touchdowns++
	case filmroom.DriveFieldGoal:
		c.FieldGoals++
	case filmroom.DrivePunt:
		c.Punts++
	case filmroom.DriveTurnover:
		c.Turnovers++
	case filmroom.DriveTurnoverOnDowns:
		c.TurnoverOnDowns++
	}
}
