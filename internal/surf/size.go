package surf

// NoDataLabel marks a size class computed without any wave height.
const NoDataLabel = "no data"

// SizeClass is the categorical size of a wave height.
type SizeClass struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Range string `json:"range"`
}

type sizeBucket struct {
	upper float64
	class SizeClass
}

// Scores rise to chest height and fall again: big surf is not good surf for everyone.
var sizeBuckets = []sizeBucket{
	{0.2, SizeClass{Score: 1, Label: "flat", Range: "0.0-0.2m"}},
	{0.5, SizeClass{Score: 2, Label: "shin-knee", Range: "0.2-0.5m"}},
	{0.8, SizeClass{Score: 3, Label: "knee-waist", Range: "0.5-0.8m"}},
	{1.2, SizeClass{Score: 4, Label: "waist-stomach", Range: "0.8-1.2m"}},
	{1.6, SizeClass{Score: 5, Label: "stomach-chest", Range: "1.2-1.6m"}},
	{2.0, SizeClass{Score: 4, Label: "chest-shoulder", Range: "1.6-2.0m"}},
	{2.5, SizeClass{Score: 3, Label: "shoulder-head", Range: "2.0-2.5m"}},
}

var overhead = SizeClass{Score: 2, Label: "overhead", Range: "2.5m+"}

// ClassifySize maps an effective height in metres to a 1-5 score, label and display range.
func ClassifySize(height *float64) SizeClass {
	if height == nil {
		return SizeClass{Score: 1, Label: NoDataLabel, Range: "-"}
	}

	for _, b := range sizeBuckets {
		if *height < b.upper {
			return b.class
		}
	}
	return overhead
}
