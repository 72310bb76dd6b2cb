package repo

import "time"

// MovementFilter narrows a movement query to a time window and a page.
type MovementFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

func (mf MovementFilter) matches(at time.Time) bool {
	if mf.Since != nil && at.Before(*mf.Since) {
		return false
	}
	if mf.Until != nil && at.After(*mf.Until) {
		return false
	}
	return true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// page returns the [start, end) bounds of the requested page over n items.
func (mf MovementFilter) page(n int) (int, int) {
	start := 0
	if mf.Offset != nil {
		start = clamp(*mf.Offset, 0, n)
	}

	end := n
	if mf.Limit != nil && *mf.Limit >= 0 {
		end = clamp(start+*mf.Limit, start, n)
	}
	return start, end
}
