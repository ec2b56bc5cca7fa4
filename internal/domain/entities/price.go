package entities

// Source marks the provenance of a resolved price.
type Source string

const (
	// SourceLocalCatalog means the price came from the static catalog.
	SourceLocalCatalog Source = "local_catalog"
	// SourceExternalFetch means the price came from the marketplace fallback.
	SourceExternalFetch Source = "external_fetch"
	// SourceNotFound means no catalog record matched the item.
	SourceNotFound Source = "not_found"
)

// GrowthNotAvailable is reported for a window with no usable history entry.
const GrowthNotAvailable = "N/A"

// Growth holds the human-readable price deltas per lookback window.
type Growth struct {
	H24 string `json:"24h"`
	D7  string `json:"7d"`
	D30 string `json:"30d"`
}

// EmptyGrowth returns a Growth with all windows unavailable.
func EmptyGrowth() Growth {
	return Growth{H24: GrowthNotAvailable, D7: GrowthNotAvailable, D30: GrowthNotAvailable}
}

// Trend is a heuristic direction label computed from recent history. The
// label comes from fixed percent-change thresholds, not from any statistical
// model; callers must treat it as a hint only.
type Trend struct {
	Label         string   `json:"label"`
	Confidence    string   `json:"confidence"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
}

// PriceResult is the unit returned to callers and persisted inside the
// cache. Price is nil when no price could be determined; Wear carries the
// actually resolved wear, which may differ from the requested one when the
// catalog record does not carry the requested condition.
type PriceResult struct {
	Price     *float64 `json:"price"`
	MarketURL string   `json:"market_url"`
	Wear      string   `json:"wear,omitempty"`
	Growth    Growth   `json:"growth"`
	Trend     Trend    `json:"trend"`
	Source    Source   `json:"source"`
}

// NewNotFoundResult returns the canonical result for an unknown item.
func NewNotFoundResult() *PriceResult {
	return &PriceResult{
		Growth: EmptyGrowth(),
		Trend:  Trend{Label: GrowthNotAvailable, Confidence: GrowthNotAvailable},
		Source: SourceNotFound,
	}
}

// HasPrice reports whether the result carries a usable price.
func (r *PriceResult) HasPrice() bool {
	return r != nil && r.Price != nil
}
