package entities

import "strings"

// keyDelimiter separates the three components of an ItemKey. It must not
// appear in item names, wear labels or currency codes.
const keyDelimiter = "||"

// WearLabels is the fixed enumeration of item condition tiers, best to worst.
var WearLabels = []string{
	"Factory New",
	"Minimal Wear",
	"Field-Tested",
	"Well-Worn",
	"Battle-Scarred",
}

// ItemKey identifies a single cache/history slot. Two keys are equal iff all
// three components match exactly.
type ItemKey struct {
	Name     string
	Wear     string
	Currency string
}

// NewItemKey builds a key from the caller-supplied components. Name and wear
// are trimmed, the currency code is upper-cased.
func NewItemKey(name, wear, currency string) ItemKey {
	return ItemKey{
		Name:     strings.TrimSpace(name),
		Wear:     strings.TrimSpace(wear),
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}
}

// String returns the stable serialized form used by the cache and history
// stores: "<name>||<wear>||<currency>".
func (k ItemKey) String() string {
	return k.Name + keyDelimiter + k.Wear + keyDelimiter + k.Currency
}
