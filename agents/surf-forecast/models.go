package surfforecast

// Provider variables come back under model-suffixed keys depending on which models were
// requested. Each list below is one quantity's lookup order, most preferred first.

func modelKeys(variable string, suffixes ...string) []string {
	keys := make([]string, len(suffixes))
	for i, s := range suffixes {
		keys[i] = variable + s
	}
	return keys
}

var (
	waveHeightKeys    = modelKeys("wave_height", "_best_match", "_gwam", "")
	waveDirectionKeys = modelKeys("wave_direction", "_best_match", "_gwam", "")
	wavePeriodKeys    = modelKeys("wave_period", "_best_match", "_gwam", "")

	windSpeedKeys     = modelKeys("wind_speed_10m", "_jma_msm", "_gfs_seamless", "_best_match", "")
	windDirectionKeys = modelKeys("wind_direction_10m", "_jma_msm", "_gfs_seamless", "_best_match", "")

	seaLevelKeys = []string{
		"sea_level_height_msl",
		"sea_level_height_msl_best_match",
		"sea_level",
		"sea_level_best_match",
		"sea_level_gwam",
	}
	seaTemperatureKeys = modelKeys("sea_surface_temperature", "_best_match", "_marine_best_match", "_gwam", "")

	visibilityKeys = modelKeys("visibility", "", "_best_match")
	cloudCoverKeys = modelKeys("cloud_cover", "", "_best_match")
)

// Daily horizon.
var (
	dailyWaveHeightKeys    = modelKeys("wave_height_max", "_best_match", "_gwam", "")
	dailyWaveDirectionKeys = modelKeys("wave_direction_dominant", "_best_match", "_gwam", "")
	dailyWindSpeedKeys     = modelKeys("wind_speed_10m_max", "_best_match", "_gwam", "")
	dailyWindDirectionKeys = modelKeys("wind_direction_10m_dominant", "_best_match", "_gwam", "")
	dailyWeatherCodeKeys   = modelKeys("weather_code", "_best_match", "_gwam", "")
)

// currentKeys puts the plain variable first: the current block is usually single-model.
func currentKeys(keys []string, variable string) []string {
	return append([]string{variable}, keys...)
}
