package steam

// priceOverviewResponse is the marketplace priceoverview payload. Prices
// arrive as locale-formatted strings, e.g. "$12.50" or "1 125,50 pуб.".
type priceOverviewResponse struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
	Volume      string `json:"volume"`
}

// currencyCodes maps ISO currency codes to the marketplace's numeric
// provider codes. Unknown currencies fall back to USD.
var currencyCodes = map[string]int{
	"USD": 1,
	"RUB": 5,
	"UAH": 18,
	"EUR": 3,
	"CNY": 23,
}

func providerCurrencyCode(currency string) int {
	if code, ok := currencyCodes[currency]; ok {
		return code
	}
	return currencyCodes["USD"]
}
