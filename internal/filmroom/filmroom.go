// Package filmroom defines the core domain types shared across the service.
// It has zero external dependencies — everything here is pure Go.
package filmroom

import "time"

type Team struct {
	ID        string
	Name      string
	Season    string
	CreatedAt time.Time
}

// Coach is an authenticated team staff member. Role is "owner" or "assistant".
type Coach struct {
	ID           string
	TeamID       string
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

type Player struct {
	ID        string
	TeamID    string
	Name      string
	Jersey    int
	Positions []string
	CreatedAt time.Time
}

// HasAnyPosition reports whether the player holds at least one of the given
// position codes. Players can be listed at several positions.
func (p Player) HasAnyPosition(codes []string) bool {
	for _, have := range p.Positions {
		for _, want := range codes {
			if have == want {
				return true
			}
		}
	}
	return false
}

type Game struct {
	ID       string
	TeamID   string
	Opponent string
	Location string
	PlayedAt *time.Time
}

type Video struct {
	ID         string
	GameID     string
	TeamID     string
	Title      string
	UploadedAt time.Time
}

// Play is one tagged play instance. Exactly one of own-team / opponent holds
// per record (OpponentPlay). Attribution IDs are empty strings when the field
// was not tagged; emptiness checks belong to record construction in the store,
// not to the calculators.
type Play struct {
	ID         string
	TeamID     string
	VideoID    string
	DriveID    string
	PlayNumber int

	Quarter  int
	Down     int
	Distance int
	YardLine int

	PlayType  string
	Formation string
	Direction string
	Result    string
	Yards     int

	Complete      bool
	Touchdown     bool
	Turnover      bool
	FirstDown     bool
	Sack          bool
	Interception  bool
	PassBreakup   bool
	TackleForLoss bool
	ForcedFumble  bool
	Success       bool
	Explosive     bool
	Motion        bool
	PlayAction    bool
	Blitz         bool
	Penalty       bool

	OpponentPlay bool

	QuarterbackID string
	CarrierID     string
	TargetID      string
}

// Participation is one normalized (play, player, role) join row. Roles:
// "block", "tackle", "pressure", "coverage". Result and Metadata are
// role-specific ("win"/"loss"/"neutral" for blocks, "primary"/"assist"/
// "missed" for tackles, and so on).
type Participation struct {
	ID       string
	PlayID   string
	PlayerID string
	Role     string
	Result   string
	Metadata map[string]string
}

// Drive is one pre-aggregated possession. The analytics engine reduces
// drives; it never constructs them.
type Drive struct {
	ID             string
	TeamID         string
	VideoID        string
	DriveNumber    int
	Result         string
	Points         int
	PlayCount      int
	Yards          int
	ThreeAndOut    bool
	ReachedRedZone bool
	Scoring        bool
	OpponentDrive  bool
}

// Drive terminal results.
const (
	DriveTouchdown       = "touchdown"
	DriveFieldGoal       = "field_goal"
	DrivePunt            = "punt"
	DriveTurnover        = "turnover"
	DriveTurnoverOnDowns = "downs"
	DriveEndOfHalf       = "end_of_half"
)

// Participation roles and block grades.
const (
	RoleBlock    = "block"
	RoleTackle   = "tackle"
	RolePressure = "pressure"
	RoleCoverage = "coverage"
	RolePenalty  = "penalty"

	BlockWin     = "win"
	BlockLoss    = "loss"
	BlockNeutral = "neutral"

	TacklePrimary = "primary"
	TackleAssist  = "assist"
	TackleMissed  = "missed"
)

// LinePositions are the five offensive-line slots. Roster membership in any
// of them qualifies a player for line tracking.
var LinePositions = []string{"LT", "LG", "C", "RG", "RT"}

// DefensivePositions qualify a player for defensive tracking.
var DefensivePositions = []string{
	"DE", "DT", "NT", "EDGE",
	"LB", "MLB", "OLB", "ILB",
	"CB", "S", "FS", "SS", "DB",
}
