package weatherpro

import "encoding/json"

// Request carries the raw query values; validation happens in the service.
type Request struct {
	Lat string
	Lon string
}

// Coordinate is a parsed latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lon float64
}

// HourlyEntry is one hour of the forecast reduced to what the rain alert needs.
type HourlyEntry struct {
	Condition string
	Timestamp int64
}

// WeatherSnapshot is a fresh one-call reading. Current and Daily are passed
// through to clients untouched.
type WeatherSnapshot struct {
	Condition   string
	Temperature float64
	Hourly      []HourlyEntry
	Current     json.RawMessage
	Daily       json.RawMessage
}

// RecommendationSet is the parsed model reply. Absent keys are empty strings.
type RecommendationSet struct {
	Clothing      string
	Food          string
	Product       string
	TouristPlace  string
	TouristAdvice string
}

// Response is the composite payload returned to the front end.
type Response struct {
	City            string          `json:"city"`
	Current         json.RawMessage `json:"current"`
	Daily           json.RawMessage `json:"daily"`
	RainAlert       string          `json:"rain_alert"`
	Recommendations Recommendations `json:"recommendations"`
}

// Recommendations groups the decorated suggestions.
type Recommendations struct {
	Clothing ImageItem   `json:"clothing"`
	Food     ImageItem   `json:"food"`
	Product  ProductItem `json:"product"`
	Tourist  TouristItem `json:"tourist"`
}

// ImageItem is a suggestion with an illustrative image URL, possibly empty.
type ImageItem struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// ProductItem is a product suggestion with shopping search links.
type ProductItem struct {
	Text  string        `json:"text"`
	Links ShoppingLinks `json:"links"`
}

// ShoppingLinks are marketplace search URLs for a product.
type ShoppingLinks struct {
	Amazon   string `json:"amazon"`
	Flipkart string `json:"flipkart"`
}

// TouristItem pairs travel advice with the suggested place and a city image.
type TouristItem struct {
	Text  string `json:"text"`
	Place string `json:"place"`
	Image string `json:"image"`
}
