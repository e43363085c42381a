package journey

import "time"

// TrainWindowDays is the official train source's booking horizon: it only
// answers queries up to today + 14 days inclusive.
const TrainWindowDays = 14

const dateLayout = "2006-01-02"

// AdjustTrainDate clamps a requested travel date into the train source's
// queryable window. When the date is clamped the result is a stand-in for a
// schedule assumed to be date-invariant, and the second return value is
// true so callers can say so. Flight legs are never adjusted.
func AdjustTrainDate(requested string, now time.Time) (string, bool) {
	target, err := time.Parse(dateLayout, requested)
	if err != nil {
		return requested, false
	}

	ceiling := now.AddDate(0, 0, TrainWindowDays)
	ceiling = time.Date(ceiling.Year(), ceiling.Month(), ceiling.Day(), 0, 0, 0, 0, time.UTC)

	if target.After(ceiling) {
		return ceiling.Format(dateLayout), true
	}

	return requested, false
}
