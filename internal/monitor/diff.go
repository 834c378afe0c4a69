package monitor

// Diff computes per-tablet counter deltas between two entity maps.
//
// With no previous map, current is returned unchanged. Otherwise only
// current leaders are considered:
//   - a tablet absent from previous passes through whole (new leader);
//   - a metric absent from previous passes through at its full value;
//   - a metric present in both keeps current-previous, if positive;
//   - a tablet whose metrics all drop out is omitted.
//
// Inputs are never modified.
func Diff(current, previous map[string]Entity) map[string]Entity {
	if previous == nil {
		return current
	}

	delta := make(map[string]Entity)
	for id, cur := range current {
		if !cur.IsLeader() {
			continue
		}

		prev, seen := previous[id]
		if !seen {
			delta[id] = cur.clone()
			continue
		}

		metrics := make(map[string]float64)
		for name, v := range cur.Metrics {
			old, had := prev.Metrics[name]
			if !had {
				metrics[name] = v
				continue
			}
			if d := v - old; d > 0 {
				metrics[name] = d
			}
		}
		if len(metrics) == 0 {
			continue
		}
		delta[id] = cur.withMetrics(metrics)
	}

	return delta
}
