package entities

// CatalogRecord is the resolved view of a catalog skin for one wear.
// PriceUSD may be zero, meaning the catalog carries no local price and the
// external fallback should be consulted.
type CatalogRecord struct {
	SkinName  string
	Wear      string
	MarketURL string
	PriceUSD  float64
}

// HasLocalPrice reports whether the catalog carries a usable base price.
func (r *CatalogRecord) HasLocalPrice() bool {
	return r != nil && r.PriceUSD > 0
}
