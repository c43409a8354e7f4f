package geo

// Place is a forward geocoding match.
type Place struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// TrendingCity counts how often a city was looked up.
type TrendingCity struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}
