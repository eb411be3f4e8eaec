package models

// TeamStats holds the pre-match and in-play numbers for one side of a match
type TeamStats struct {
	AvgScored     float64 `json:"avg_scored" mapstructure:"avg_scored" validate:"finite,gte=0"`
	AvgConceded   float64 `json:"avg_conceded" mapstructure:"avg_conceded" validate:"finite,gte=0"`
	XG            float64 `json:"xg" mapstructure:"xg" validate:"finite,gte=0"`
	InPlayXG      float64 `json:"in_play_xg" mapstructure:"in_play_xg" validate:"finite,gte=0"`
	Goals         int     `json:"goals" mapstructure:"goals" validate:"gte=0,lte=2147483647"`
	Possession    float64 `json:"possession" mapstructure:"possession" validate:"finite,gte=0,lte=100"`
	ShotsOnTarget int     `json:"shots_on_target" mapstructure:"shots_on_target" validate:"gte=0,lte=2147483647"`
	BoxTouches    float64 `json:"box_touches" mapstructure:"box_touches" validate:"finite,gte=0"`
	Corners       float64 `json:"corners" mapstructure:"corners" validate:"finite,gte=0"`
}

// MatchSnapshot is the full set of numeric inputs for one in-play evaluation
type MatchSnapshot struct {
	Home           TeamStats `json:"home" mapstructure:"home"`
	Away           TeamStats `json:"away" mapstructure:"away"`
	ElapsedMinutes float64   `json:"elapsed_minutes" mapstructure:"elapsed_minutes" validate:"finite,gte=0"`
	AccountBalance float64   `json:"account_balance" mapstructure:"account_balance" validate:"finite,gte=0"`
}

// GoalDifference returns home goals minus away goals
func (m MatchSnapshot) GoalDifference() int {
	return m.Home.Goals - m.Away.Goals
}

// TotalGoals returns the goals scored so far by both sides
func (m MatchSnapshot) TotalGoals() int {
	return m.Home.Goals + m.Away.Goals
}

// PreMatchTeam holds the season numbers used by the pre-match goals model
type PreMatchTeam struct {
	AvgScored   float64 `json:"avg_scored" mapstructure:"avg_scored" validate:"finite,gte=0"`
	AvgConceded float64 `json:"avg_conceded" mapstructure:"avg_conceded" validate:"finite,gte=0"`
	XGScored    float64 `json:"xg_scored" mapstructure:"xg_scored" validate:"finite,gte=0"`
	XGConceded  float64 `json:"xg_conceded" mapstructure:"xg_conceded" validate:"finite,gte=0"`
	Injuries    int     `json:"injuries" mapstructure:"injuries" validate:"gte=0,lte=2147483647"`
	Position    int     `json:"position" mapstructure:"position" validate:"gte=0,lte=2147483647"`
	Form        int     `json:"form" mapstructure:"form" validate:"gte=-2147483647,lte=2147483647"`
}

// PreMatchSnapshot is the input of the pre-match over/under model
type PreMatchSnapshot struct {
	Home           PreMatchTeam `json:"home" mapstructure:"home"`
	Away           PreMatchTeam `json:"away" mapstructure:"away"`
	Line           float64      `json:"line" mapstructure:"line" validate:"finite,gte=0"`
	AccountBalance float64      `json:"account_balance" mapstructure:"account_balance" validate:"finite,gte=0"`
}

// DefaultGoalLine is the over/under line used when none is supplied
const DefaultGoalLine = 2.5

// GoalLine returns the configured line or the default 2.5
func (p PreMatchSnapshot) GoalLine() float64 {
	if p.Line <= 0 {
		return DefaultGoalLine
	}
	return p.Line
}
