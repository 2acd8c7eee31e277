package domain

import "time"

// SameLocalDay reports whether two instants fall on the same calendar
// day in local time.
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts whole local calendar days from a to b.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.Local)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.Local)
	return int(end.Sub(start).Hours() / 24)
}

// NextStreak computes the streak value for a habit completion happening
// at now, given the previous completion time (nil for never).
//
// Daily habits keep their streak only when the previous completion was
// exactly yesterday; weekly habits when it falls within the trailing
// seven days. A completion on the same calendar day is reported as
// alreadyToday and must not re-award.
func NextStreak(freq HabitFrequency, current int, last *time.Time, now time.Time) (streak int, alreadyToday bool) {
	if last == nil {
		return 1, false
	}
	if SameLocalDay(*last, now) {
		return current, true
	}

	days := daysBetween(*last, now)
	switch freq {
	case HabitDaily:
		if days == 1 {
			return current + 1, false
		}
	case HabitWeekly:
		if days >= 1 && days <= 7 {
			return current + 1, false
		}
	}
	return 1, false
}

// MissionTarget draws the progress target for a mission start. A fixed
// target uses min; a ranged one draws uniformly in [min, max] exactly
// once, via the supplied intn (rand.IntN-compatible).
func MissionTarget(min int, max *int, intn func(n int) int) int {
	if max == nil || *max <= min {
		return min
	}
	return min + intn(*max-min+1)
}
