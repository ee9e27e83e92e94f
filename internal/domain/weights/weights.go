// Package weights maps a week of a season to the blend of seasons
// that situational statistics are averaged over.
//
// Early in a season the sample is thin, so prior seasons carry real
// weight; by week six the current season stands alone. The schedule is
// a fixed table rather than branching code so it can be inspected and
// tested directly.
package weights

import "fmt"

// Week bounds for a season including postseason.
const (
	MinWeek = 1
	MaxWeek = 22
)

// schedule[w-1] holds the {current, current-1, current-2} weights for
// week w. Weeks past the table saturate at the final row.
var schedule = [...][3]float64{
	{0.88, 0.10, 0.02}, // week 1
	{0.90, 0.08, 0.02}, // week 2
	{0.94, 0.05, 0.01}, // week 3
	{0.96, 0.04, 0.00}, // week 4
	{0.98, 0.02, 0.00}, // week 5
	{1.00, 0.00, 0.00}, // week 6 and later
}

// ForWeek returns the season -> weight blend for the given week of the
// given season. Weights are in [0, 1], sum to 1, and seasons with zero
// weight are omitted.
func ForWeek(week, season int) (map[int]float64, error) {
	if week < MinWeek || week > MaxWeek {
		return nil, fmt.Errorf("week %d out of range [%d, %d]", week, MinWeek, MaxWeek)
	}

	row := schedule[len(schedule)-1]
	if week <= len(schedule) {
		row = schedule[week-1]
	}

	out := make(map[int]float64, 3)
	for back, w := range row {
		if w > 0 {
			out[season-back] = w
		}
	}
	return out, nil
}
