package filmroom

// Pre-shaped rows returned by the store's aggregation primitives. The
// analytics calculators treat these as black boxes: the store owns how the
// numbers are reduced, the calculators only derive rates from them.

// BlockLine is one lineman's block grading summary.
type BlockLine struct {
	Assignments int     `json:"assignments"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Neutral     int     `json:"neutral"`
	WinRate     float64 `json:"winRate"`
}

// TackleLine is one defender's tackle participation summary.
type TackleLine struct {
	Primary int `json:"primary"`
	Assist  int `json:"assist"`
	Missed  int `json:"missed"`
}

// PressureLine is one defender's pass-rush summary. Pressures and sacks are
// disjoint counts.
type PressureLine struct {
	Pressures int `json:"pressures"`
	Sacks     int `json:"sacks"`
}

// CoverageLine is one defender's coverage-assignment summary.
type CoverageLine struct {
	Targets int `json:"targets"`
	Wins    int `json:"wins"`
}

// SplitCounts is the raw reduction behind one situational split.
type SplitCounts struct {
	Plays      int `json:"plays"`
	Yards      int `json:"yards"`
	Successes  int `json:"successes"`
	Explosives int `json:"explosives"`
}
