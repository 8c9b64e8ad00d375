package surf

// OnshoreStrongWindMs is the speed above which onshore wind costs two points instead of one.
const OnshoreStrongWindMs = 4.0

// WindEffect scores the wind against the beach orientation: +1 offshore, -1 onshore
// (-2 when stronger than OnshoreStrongWindMs), 0 for cross-shore or unknown directions.
// The wind direction is where the wind blows from, so a wind from the beach's own facing
// blows straight onshore.
func WindEffect(beach, wind Direction, speedMs float64) int {
	diff := FoldedDistance(beach, wind)
	switch {
	case diff < 0:
		return 0
	case diff >= 6:
		return 1
	case diff <= 2:
		if speedMs > OnshoreStrongWindMs {
			return -2
		}
		return -1
	default:
		return 0
	}
}
