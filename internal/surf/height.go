package surf

// Attenuation is the share of offshore swell height that reaches a beach when the swell
// arrives diff buckets (of 22.5°) away from the direction the beach faces.
// Swell from behind or parallel to the beach is heavily reduced but never zeroed,
// since some energy always wraps in.
func Attenuation(diff int) float64 {
	switch {
	case diff <= 1:
		return 1.0
	case diff <= 2:
		return 0.9
	case diff <= 3:
		return 0.7
	case diff <= 4:
		return 0.5
	default:
		return 0.2
	}
}

// EffectiveHeight estimates the wave height felt at a beach facing beach from an offshore
// swell of height raw arriving from swell. A missing height gives 0; an unknown direction on
// either side leaves the height unattenuated. The result is never negative.
func EffectiveHeight(raw *float64, swell, beach Direction) float64 {
	if raw == nil {
		return 0
	}

	h := *raw
	if diff := FoldedDistance(beach, swell); diff >= 0 {
		h *= Attenuation(diff)
	}

	if h < 0 {
		return 0
	}
	return h
}
