package surfforecast

import (
	"errors"
	"fmt"
	"time"

	"surfcast/internal/models"
	"surfcast/internal/openmeteo"
	"surfcast/internal/surf"
)

// ErrMalformedPayload means a marine payload lacks the data every forecast needs.
var ErrMalformedPayload = errors.New("malformed marine payload")

const kmhPerMs = 3.6

// Assembler merges a point's wind and marine payloads into one PointForecast.
type Assembler struct {
	clock func() time.Time
}

func NewAssembler() *Assembler {
	return &Assembler{clock: time.Now}
}

// AssembleNow assembles against the assembler's clock.
func (a *Assembler) AssembleNow(point models.SurfPoint, wind, marine *openmeteo.Response) (*models.PointForecast, error) {
	return a.Assemble(point, wind, marine, a.clock())
}

// Assemble derives the current, hourly and daily assessments. It is deterministic for a
// given now. Missing values never fail; only a marine payload without a time axis or any
// wave-height series does.
func (a *Assembler) Assemble(point models.SurfPoint, wind, marine *openmeteo.Response, now time.Time) (*models.PointForecast, error) {
	if marine == nil || marine.Hourly.Len() == 0 {
		return nil, fmt.Errorf("%w: no hourly time axis", ErrMalformedPayload)
	}
	if !marine.Hourly.Has(waveHeightKeys...) {
		return nil, fmt.Errorf("%w: no wave height series", ErrMalformedPayload)
	}
	if wind == nil {
		wind = &openmeteo.Response{}
	}

	loc := marine.Location()
	times := marine.Hourly.Times(loc)
	idx := surf.NearestIndex(times, now)
	if idx < 0 {
		return nil, fmt.Errorf("%w: unparseable hourly time axis", ErrMalformedPayload)
	}

	p := &payloads{
		wind:       wind,
		marine:     marine,
		times:      times,
		windHourly: indexByTime(wind.Hourly),
		windDaily:  indexByTime(wind.Daily),
	}
	beach := point.Beach()

	forecast := a.current(point, beach, p, idx)
	forecast.Time = now.In(loc).Format("15:04")
	forecast.UpdatedAt = now
	forecast.Hourly = a.hourly(beach, p)
	forecast.Daily = a.daily(beach, p)

	return forecast, nil
}

type payloads struct {
	wind       *openmeteo.Response
	marine     *openmeteo.Response
	times      []time.Time
	windHourly map[string]int
	windDaily  map[string]int
}

func indexByTime(b *openmeteo.Block) map[string]int {
	idx := make(map[string]int, b.Len())
	if b == nil {
		return idx
	}
	for i, t := range b.Time {
		if _, dup := idx[t]; !dup {
			idx[t] = i
		}
	}
	return idx
}

// lookup maps a marine timestamp to its index in the wind payload, -1 when absent.
func lookup(index map[string]int, t string) int {
	if i, ok := index[t]; ok {
		return i
	}
	return -1
}

func toMs(kmh *float64) float64 {
	return surf.ValueOr(kmh, 0) / kmhPerMs
}

// tideAt is the measured sea level at i, or the M2 estimate for that slot.
func (p *payloads) tideAt(i int) (float64, bool) {
	if v := p.marine.Hourly.Value(seaLevelKeys, i); v != nil {
		return *v, false
	}
	return surf.EstimateTide(p.times[i]), true
}

func (a *Assembler) current(point models.SurfPoint, beach surf.Beach, p *payloads, idx int) *models.PointForecast {
	mc, mh := p.marine.Current, p.marine.Hourly
	wc, wh := p.wind.Current, p.wind.Hourly
	wi := lookup(p.windHourly, mh.Time[idx])

	rawHeight := surf.Coalesce(mc.Value(currentKeys(waveHeightKeys, "wave_height")...), mh.Value(waveHeightKeys, idx))
	waveDeg := surf.Coalesce(mc.Value(currentKeys(waveDirectionKeys, "wave_direction")...), mh.Value(waveDirectionKeys, idx))
	period := surf.Coalesce(mc.Value(currentKeys(wavePeriodKeys, "wave_period")...), mh.Value(wavePeriodKeys, idx))
	seaTemp := surf.Coalesce(mc.Value(currentKeys(seaTemperatureKeys, "sea_surface_temperature")...), mh.Value(seaTemperatureKeys, idx))
	windKmh := surf.Coalesce(wc.Value(currentKeys(windSpeedKeys, "wind_speed_10m")...), wh.Value(windSpeedKeys, wi))
	windDeg := surf.Coalesce(wc.Value(currentKeys(windDirectionKeys, "wind_direction_10m")...), wh.Value(windDirectionKeys, wi))

	cond := surf.Conditions{
		SwellHeight: rawHeight,
		SwellDir:    surf.DirectionFromDegrees(waveDeg),
		WindSpeedMs: toMs(windKmh),
		WindDir:     surf.DirectionFromDegrees(windDeg),
	}
	as := surf.Assess(beach, cond)
	tide, _ := p.tideAt(idx)

	return &models.PointForecast{
		ID:               point.ID,
		Beach:            point.Name,
		Height:           as.Size.Label,
		HeightMeters:     as.EffectiveHeight,
		RawSwellHeight:   rawHeight,
		HeightRange:      as.Size.Range,
		Period:           surf.ValueOr(period, 0),
		WindSpeed:        cond.WindSpeedMs,
		WindDirection:    cond.WindDir,
		WaveDirectionStr: cond.SwellDir,
		WaveDirectionDeg: waveDeg,
		IsBestSwell:      as.BestSwell,
		BeachFacing:      beach.Facing,
		Temperature:      surf.ValueOr(seaTemp, 0),
		Visibility:       wc.Value(visibilityKeys...),
		CloudCover:       wc.Value(cloudCoverKeys...),
		Tide:             tide,
		Quality:          as.Grade,
		Note:             point.Note,
		BestSwell:        point.BestSwell,
	}
}

func (a *Assembler) hourly(beach surf.Beach, p *payloads) []models.HourlyForecast {
	mh, wh := p.marine.Hourly, p.wind.Hourly
	out := make([]models.HourlyForecast, 0, mh.Len())

	for i, ts := range mh.Time {
		wi := lookup(p.windHourly, ts)
		raw := mh.Value(waveHeightKeys, i)

		cond := surf.Conditions{
			SwellHeight: raw,
			SwellDir:    surf.DirectionFromDegrees(mh.Value(waveDirectionKeys, i)),
			WindSpeedMs: toMs(wh.Value(windSpeedKeys, wi)),
			WindDir:     surf.DirectionFromDegrees(wh.Value(windDirectionKeys, wi)),
		}
		as := surf.Assess(beach, cond)

		var tide float64
		var estimated bool
		if !p.times[i].IsZero() {
			tide, estimated = p.tideAt(i)
		}

		out = append(out, models.HourlyForecast{
			Time:          ts,
			WaveHeight:    as.EffectiveHeight,
			RawWaveHeight: raw,
			WaveLabel:     as.Size.Label,
			WaveRange:     as.Size.Range,
			Period:        surf.ValueOr(mh.Value(wavePeriodKeys, i), 0),
			WindSpeed:     cond.WindSpeedMs,
			WindDir:       cond.WindDir,
			Quality:       as.Grade,
			Tide:          tide,
			TideEstimated: estimated,
		})
	}
	return out
}

func (a *Assembler) daily(beach surf.Beach, p *payloads) []models.DailyForecast {
	md, wd := p.marine.Daily, p.wind.Daily
	out := make([]models.DailyForecast, 0, md.Len())
	if md == nil {
		return out
	}

	for i, ts := range md.Time {
		wi := lookup(p.windDaily, ts)
		raw := md.Value(dailyWaveHeightKeys, i)

		cond := surf.Conditions{
			SwellHeight: raw,
			SwellDir:    surf.DirectionFromDegrees(md.Value(dailyWaveDirectionKeys, i)),
			WindSpeedMs: toMs(wd.Value(dailyWindSpeedKeys, wi)),
			WindDir:     surf.DirectionFromDegrees(wd.Value(dailyWindDirectionKeys, wi)),
		}
		as := surf.Assess(beach, cond)
		sst := p.noonSeaTemperature(i)

		out = append(out, models.DailyForecast{
			Time:           ts,
			WaveHeight:     as.EffectiveHeight,
			RawWaveHeight:  raw,
			WaveLabel:      as.Size.Label,
			WindSpeedMax:   cond.WindSpeedMs,
			WindDir:        cond.WindDir,
			TemperatureMax: sst,
			TemperatureMin: sst,
			WeatherCode:    int(surf.ValueOr(wd.Value(dailyWeatherCodeKeys, wi), 0)),
			Quality:        as.Grade,
		})
	}
	return out
}

// noonSeaTemperature reads the hourly sea temperature at local noon of day i, assuming the
// hourly axis starts at midnight of day 0. It falls back to the first hourly value.
func (p *payloads) noonSeaTemperature(day int) float64 {
	mh := p.marine.Hourly
	if v := mh.Value(seaTemperatureKeys, day*24+12); v != nil {
		return *v
	}
	return surf.ValueOr(mh.Value(seaTemperatureKeys, 0), 0)
}
