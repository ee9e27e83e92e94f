package model

// NeutralScore is returned by a component scorer when a team has no
// qualifying plays.
const NeutralScore = 50.0

// EPABreakdown carries situational mean-EPA diagnostics. Each value is
// the mean EPA over the named subset; an empty subset reports 0.
type EPABreakdown struct {
	RedZone   float64 `json:"red_zone"`
	ThirdDown float64 `json:"third_down"`
	TwoMinute float64 `json:"two_minute"`
	GoalLine  float64 `json:"goal_line"`
	Normal    float64 `json:"normal"`
}

// SuccessBreakdown carries situational success-rate diagnostics in
// percent.
type SuccessBreakdown struct {
	Offense           float64 `json:"offense"`
	DefensiveStopRate float64 `json:"defensive_stop_rate"`
	RedZone           float64 `json:"red_zone"`
	ThirdDown         float64 `json:"third_down"`
	GoalLine          float64 `json:"goal_line"`
	TwoMinute         float64 `json:"two_minute"`
}

// YardsBreakdown carries yardage diagnostics.
type YardsBreakdown struct {
	PerPlay        float64 `json:"per_play"`
	AllowedPerPlay float64 `json:"allowed_per_play"`
	PerPassAttempt float64 `json:"per_pass_attempt"`
	PerCarry       float64 `json:"per_carry"`
	AfterCatch     float64 `json:"after_catch"`
	ExplosiveRate  float64 `json:"explosive_rate"`
}

// TurnoverBreakdown carries turnover diagnostics in percent.
type TurnoverBreakdown struct {
	InterceptionRate float64 `json:"interception_rate"`
	FumbleLostRate   float64 `json:"fumble_lost_rate"`
	TakeawayRate     float64 `json:"takeaway_rate"`
	RedZone          float64 `json:"red_zone"`
	ThirdDown        float64 `json:"third_down"`
	TwoMinute        float64 `json:"two_minute"`
}

// ComponentScore is the result of one component scorer: a normalised
// 0..100 score plus a data-sufficiency flag.
type ComponentScore struct {
	Score            float64 `json:"score"`
	InsufficientData bool    `json:"insufficient_data"`
}

// Diagnostics bundles the situational breakdowns computed for one
// team during a prediction.
type Diagnostics struct {
	EPA      EPABreakdown      `json:"epa"`
	Success  SuccessBreakdown  `json:"success"`
	Yards    YardsBreakdown    `json:"yards"`
	Turnover TurnoverBreakdown `json:"turnover"`
}
