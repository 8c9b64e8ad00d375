package surf

// Beach is the fixed orientation data of a surf point the engine needs.
type Beach struct {
	Facing    Direction
	BestSwell string
}

// Conditions are the raw inputs for one time slot at one beach.
type Conditions struct {
	SwellHeight *float64 // metres, offshore
	SwellDir    Direction
	WindSpeedMs float64
	WindDir     Direction
}

// Assessment is the derived rating for one time slot.
type Assessment struct {
	EffectiveHeight float64
	Size            SizeClass
	WindEffect      int
	BestSwell       bool
	Grade           Grade
}

// Assess runs the whole derivation for one time slot. A missing swell height still produces
// a "no data" size class and a grade.
func Assess(b Beach, c Conditions) Assessment {
	eff := EffectiveHeight(c.SwellHeight, c.SwellDir, b.Facing)

	var size SizeClass
	if c.SwellHeight == nil {
		size = ClassifySize(nil)
	} else {
		size = ClassifySize(&eff)
	}

	best := IsBestSwell(b.BestSwell, c.SwellDir)
	wind := WindEffect(b.Facing, c.WindDir, c.WindSpeedMs)

	return Assessment{
		EffectiveHeight: eff,
		Size:            size,
		WindEffect:      wind,
		BestSwell:       best,
		Grade:           ComposeQuality(size.Score, wind, best),
	}
}
