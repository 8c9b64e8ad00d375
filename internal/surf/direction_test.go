package surf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionFromDegrees(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want Direction
	}{
		{"north", 0, N},
		{"just below half bucket", 11.24, N},
		{"half bucket rounds up", 11.25, NNE},
		{"east", 90, E},
		{"south-ish", 191, S},
		{"west north west", 292.5, WNW},
		{"below north half bucket", 348.74, NNW},
		{"north half bucket wraps", 348.75, N},
		{"full turn", 360, N},
		{"negative bearing", -22.5, NNW},
		{"more than one turn", 720 + 90, E},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deg := tt.deg
			assert.Equal(t, tt.want, DirectionFromDegrees(&deg))
		})
	}
}

func TestDirectionFromDegrees_Absent(t *testing.T) {
	assert.Equal(t, NoDirection, DirectionFromDegrees(nil))
	assert.Equal(t, NoDirection, DirectionFromDegrees(Float(math.NaN())))
	assert.Equal(t, "-", NoDirection.String())
	assert.True(t, math.IsNaN(NoDirection.Degrees()))
}

func TestDirectionRoundTrip(t *testing.T) {
	for _, d := range Directions() {
		deg := d.Degrees()
		assert.Equal(t, d, DirectionFromDegrees(&deg), "round trip for %s", d)

		parsed, ok := ParseDirection(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, parsed)
	}
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection(" ssw ")
	assert.True(t, ok)
	assert.Equal(t, SSW, d)

	d, ok = ParseDirection("NORTH")
	assert.False(t, ok)
	assert.Equal(t, NoDirection, d)
}

func TestFoldedDistance(t *testing.T) {
	tests := []struct {
		a, b Direction
		want int
	}{
		{N, N, 0},
		{N, NNW, 1},
		{NNE, NNW, 2},
		{N, E, 4},
		{N, S, 8},
		{E, W, 8},
		{SE, N, 6},
		{N, NoDirection, -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldedDistance(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.want, FoldedDistance(tt.b, tt.a), "%s vs %s", tt.b, tt.a)
	}
}

func TestDirectionMarshalText(t *testing.T) {
	b, err := ENE.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "ENE", string(b))
}

func TestDirectionUnmarshalText(t *testing.T) {
	var d Direction
	assert.NoError(t, d.UnmarshalText([]byte("wsw")))
	assert.Equal(t, WSW, d)

	assert.NoError(t, d.UnmarshalText([]byte("-")))
	assert.Equal(t, NoDirection, d)

	assert.Error(t, d.UnmarshalText([]byte("up")))
}
