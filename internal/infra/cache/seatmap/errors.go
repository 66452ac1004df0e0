package seatmap

import "errors"

var (
	// ErrCacheMiss is returned when no seat map is cached for the screening
	ErrCacheMiss = errors.New("seatmap.cache: miss")

	// ErrCache is returned on redis or encoding failures
	ErrCache = errors.New("seatmap.cache: failure")
)
