package weatherpro

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	rainWindow      = 3
	rainExpected    = "Heads up! Rain is expected within the next 3 hours."
	rainNotExpected = "No immediate rain expected."

	amazonSearchURL   = "https://www.amazon.in/s?k="
	flipkartSearchURL = "https://www.flipkart.com/search?q="
)

// rainAlert inspects at most the first three hourly entries.
func rainAlert(hourly []HourlyEntry) string {
	for i, entry := range hourly {
		if i >= rainWindow {
			break
		}
		if strings.EqualFold(entry.Condition, "rain") {
			return rainExpected
		}
	}
	return rainNotExpected
}

func buildRecommendationPrompt(city, condition string, temperature float64) string {
	temp := strconv.FormatFloat(temperature, 'f', -1, 64)
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the weather in %s, which is currently %q at %s°C:\n", city, condition, temp)
	b.WriteString("1. Provide a one-sentence, stylish clothing recommendation.\n")
	b.WriteString("2. Provide a one-sentence food recommendation that fits the weather.\n")
	b.WriteString("3. Suggest a specific, relevant product category a person might need to buy.\n")
	fmt.Fprintf(&b, "4. Suggest a popular tourist place in or near %s that is suitable for the current weather.\n", city)
	b.WriteString("5. Provide a one-sentence travel advice for the recommended tourist place.\n")
	b.WriteString(`Strictly return the response as a single, valid JSON object with keys: "clothing", "food", "product", "tourist_place", "tourist_advice".` + "\n")
	b.WriteString(`Example: {"clothing": "...", "food": "...", "product": "...", "tourist_place": "...", "tourist_advice": "..."}`)
	return b.String()
}

// shoppingLinks percent-encodes the product with %20 for spaces. Slashes are
// left as is.
func shoppingLinks(product string) ShoppingLinks {
	q := strings.NewReplacer("+", "%20", "%2F", "/").Replace(url.QueryEscape(product))
	return ShoppingLinks{
		Amazon:   amazonSearchURL + q,
		Flipkart: flipkartSearchURL + q,
	}
}
