package interfaces

import "skin-price-service/internal/domain/entities"

// Catalog resolves an item display name plus wear label against the static
// skin catalog. A failed lookup is a normal outcome, not an error, so it is
// reported through the boolean instead of an error value.
type Catalog interface {
	Resolve(itemName, wear string) (*entities.CatalogRecord, bool)
}
