package weatherpro

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNullReply = errors.New("reply is null, expected a JSON object")

func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// parseRecommendations decodes the model reply. Non-string values are kept in
// their JSON form; missing or null keys become empty strings.
func parseRecommendations(reply string) (RecommendationSet, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &raw); err != nil {
		return RecommendationSet{}, err
	}
	if raw == nil {
		return RecommendationSet{}, errNullReply
	}
	return RecommendationSet{
		Clothing:      stringField(raw, "clothing"),
		Food:          stringField(raw, "food"),
		Product:       stringField(raw, "product"),
		TouristPlace:  stringField(raw, "tourist_place"),
		TouristAdvice: stringField(raw, "tourist_advice"),
	}, nil
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
