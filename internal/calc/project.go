package calc

const (
	// targetRoundingSlack makes a target count as met once the exact total
	// rounds up to it.
	targetRoundingSlack = 0.05
	// targetNudge offsets half-to-even rounding of the slack above.
	targetNudge = 0.01
)

// Projection is the clock time a target total will be, or was, reached.
// At most one field is set.
type Projection struct {
	TargetTime string
	AchievedAt string
}

// Project computes when target hours are reached given the exact hours worked
// so far and the latest interval end. A zero target projects nothing.
func Project(target, exactTotal, lastEnd float64) Projection {
	if target == 0 {
		return Projection{}
	}

	remaining := target - exactTotal - targetRoundingSlack + targetNudge
	at := Format12h(lastEnd + remaining)
	if remaining > 0 {
		return Projection{TargetTime: at}
	}
	return Projection{AchievedAt: at}
}
