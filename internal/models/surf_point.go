package models

import (
	"fmt"
	"strings"

	"surfcast/internal/surf"
)

// SurfPoint is one monitored surf spot. Points are loaded once at startup and never mutated.
type SurfPoint struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Latitude    float64 `json:"lat" yaml:"latitude"`
	Longitude   float64 `json:"lon" yaml:"longitude"`
	BeachFacing string  `json:"beachFacing" yaml:"beach_facing"` // compass symbol, e.g. "SE"
	BestSwell   string  `json:"bestSwell,omitempty" yaml:"best_swell"`
	Note        string  `json:"note,omitempty" yaml:"note"`
}

// Facing returns the beach orientation, NoDirection when the symbol is not recognised.
func (p SurfPoint) Facing() surf.Direction {
	d, _ := surf.ParseDirection(p.BeachFacing)
	return d
}

// Beach is the part of the point the condition engine needs.
func (p SurfPoint) Beach() surf.Beach {
	return surf.Beach{Facing: p.Facing(), BestSwell: p.BestSwell}
}

// Validate checks the fields a forecast cannot be produced without.
func (p SurfPoint) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("surf point %q has no id", p.Name)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("surf point %s: latitude %.4f out of range", p.ID, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("surf point %s: longitude %.4f out of range", p.ID, p.Longitude)
	}
	if _, ok := surf.ParseDirection(p.BeachFacing); !ok {
		return fmt.Errorf("surf point %s: invalid beach_facing %q", p.ID, p.BeachFacing)
	}
	for _, tok := range surf.SwellTokens(p.BestSwell) {
		if _, ok := surf.ParseDirection(tok); !ok {
			return fmt.Errorf("surf point %s: invalid best_swell direction %q", p.ID, tok)
		}
	}
	return nil
}

// DefaultSurfPoints is the built-in catalog used when the config lists no points.
func DefaultSurfPoints() []SurfPoint {
	return []SurfPoint{
		{ID: "point-1", Name: "Fukui Toriihama", Latitude: 35.506, Longitude: 135.532, BeachFacing: "NE",
			BestSwell: "NE, NNE, N, NNW", Note: "Faces slightly north-east"},
		{ID: "point-2", Name: "Fukui Nibae", Latitude: 35.518, Longitude: 135.485, BeachFacing: "E",
			BestSwell: "ENE,E, ESE"},
		{ID: "point-3", Name: "Kyoto Hacchohama", Latitude: 35.678, Longitude: 135.068, BeachFacing: "N",
			BestSwell: "NNE, N, NNW, NW", Note: "Sea of Japan, works on any north swell"},
		{ID: "point-4", Name: "Kyoto Hamazume", Latitude: 35.667, Longitude: 134.96, BeachFacing: "NW",
			BestSwell: "NNE, N, NNW, NW", Note: "Sea of Japan, works on any north swell"},
		{ID: "point-5", Name: "Tottori Kozawami", Latitude: 35.525, Longitude: 134.108, BeachFacing: "N",
			BestSwell: "NNE, N, NNW, NW", Note: "Open to the whole Sea of Japan"},
		{ID: "point-6", Name: "Mie Kokufunohama", Latitude: 34.354, Longitude: 136.885, BeachFacing: "E",
			BestSwell: "E, ESE, SE, SSE, S", Note: "Mostly east to south swells"},
		{ID: "point-7", Name: "Wakayama Isonoura", Latitude: 34.257, Longitude: 135.12, BeachFacing: "S",
			BestSwell: "S, SSW, SW, WSW", Note: "Inside Osaka Bay, needs a strong south swell"},
		{ID: "point-8", Name: "Tokushima Komatsu", Latitude: 34.055, Longitude: 134.588, BeachFacing: "SE",
			BestSwell: "ESE, SE, SSE, S", Note: "Kii Channel, picks up east to south"},
		{ID: "point-9", Name: "Tokushima Shishikui", Latitude: 33.56, Longitude: 134.305, BeachFacing: "SE",
			BestSwell: "S, SSE, SE, ESE", Note: "Open to south and east swells"},
		{ID: "point-10", Name: "Kochi Ikumi", Latitude: 33.535, Longitude: 134.33, BeachFacing: "SE",
			BestSwell: "ESE, SE, SSE, S", Note: "Toyo town, best on a south-east swell"},
		{ID: "point-11", Name: "Aichi Long Beach", Latitude: 34.6, Longitude: 137.22, BeachFacing: "S",
			BestSwell: "SE, SSE, S, SSW", Note: "South-facing onto the Pacific"},
	}
}
