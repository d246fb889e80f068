package internal

import "time"

const (
	// DefaultURL is the NOAA 24h snowfall grid the tool was first written against.
	DefaultURL = "https://www.nohrsc.noaa.gov/snowfall/data/202202/sfav2_CONUS_24h_2022020100_grid184.grb2"

	DefaultChunkSize    = 32 * 1024
	DefaultHistoryLimit = 100
)

var (
	GlobalFetchTimeout = 10 * time.Minute
	GlobalRedisTimeout = 5 * time.Second
)
