package catalogservice

// Title is a film or live event as returned by the catalog
type Title struct {
	ID              int64  `json:"id"`
	Kind            string `json:"kind"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ErrorResponse is the catalog error body
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
