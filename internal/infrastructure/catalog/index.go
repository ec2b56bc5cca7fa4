package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/logging"
)

// itemDelimiter separates the weapon part from the skin part in an item
// display name, e.g. "AK-47 | Redline".
const itemDelimiter = " | "

// categories are the fixed catalog partitions, kept sorted so that lookup
// order never depends on filesystem enumeration.
var categories = []string{
	"gloves",
	"heavy",
	"knives",
	"pistols",
	"rifles",
	"shotguns",
	"smgs",
	"snipers",
}

// skinRecord is the on-disk shape of one catalog skin.
type skinRecord struct {
	Name   string             `json:"name"`
	Links  WearMap            `json:"links"`
	Prices map[string]float64 `json:"prices"`
}

// catalogFile is one parsed catalog file together with its normalized
// lookup stem.
type catalogFile struct {
	category string
	stem     string
	skins    []skinRecord
}

// Index is an in-memory catalog built once at startup. Files are loaded in
// sorted category and filename order, so resolution is deterministic.
type Index struct {
	files []catalogFile
}

// NewIndex loads every catalog file under dir. Missing category directories
// are skipped; an unparsable file is logged and skipped rather than failing
// the whole catalog.
func NewIndex(dir string) (*Index, error) {
	ctx := context.Background()
	idx := &Index{}

	for _, category := range categories {
		categoryPath := filepath.Join(dir, category)
		dirEntries, err := os.ReadDir(categoryPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read catalog category %s: %w", category, err)
		}

		names := make([]string, 0, len(dirEntries))
		for _, e := range dirEntries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			path := filepath.Join(categoryPath, name)
			data, err := os.ReadFile(path)
			if err != nil {
				logging.WarnWithError(ctx, "Skipping unreadable catalog file", err, logging.Fields{
					"path": path,
				})
				continue
			}

			var skins []skinRecord
			if err := json.Unmarshal(data, &skins); err != nil {
				logging.WarnWithError(ctx, "Skipping malformed catalog file", err, logging.Fields{
					"path": path,
				})
				continue
			}

			idx.files = append(idx.files, catalogFile{
				category: category,
				stem:     strings.ToLower(strings.TrimSuffix(name, ".json")),
				skins:    skins,
			})
		}
	}

	logging.Info(ctx, "Catalog index built", logging.Fields{
		"dir":   dir,
		"files": len(idx.files),
		"skins": idx.SkinCount(),
	})
	return idx, nil
}

// Resolve implements interfaces.Catalog. The item name is split into weapon
// and skin tokens; the weapon token selects the first matching catalog file
// in index order, the skin token selects a record inside it (exact
// case-insensitive match wins over substring containment). When the
// requested wear is absent, the record's first listed wear is substituted
// and reported in the returned record.
func (idx *Index) Resolve(itemName, wear string) (*entities.CatalogRecord, bool) {
	weapon, skin := splitItemName(itemName)

	file := idx.findFile(weapon)
	if file == nil {
		return nil, false
	}

	record := findSkin(file.skins, skin)
	if record == nil {
		return nil, false
	}

	actualWear := wear
	url, ok := record.Links.Get(wear)
	if !ok {
		// Substitute the first available wear; the caller sees which wear
		// was actually resolved.
		actualWear, url, ok = record.Links.First()
		if !ok {
			return nil, false
		}
	}

	return &entities.CatalogRecord{
		SkinName:  record.Name,
		Wear:      actualWear,
		MarketURL: url,
		PriceUSD:  record.Prices[actualWear],
	}, true
}

// findFile returns the first catalog file whose stem matches the weapon
// token, in deterministic index order.
func (idx *Index) findFile(weapon string) *catalogFile {
	normalized := normalizeWeapon(weapon)
	raw := strings.ToLower(weapon)

	for i := range idx.files {
		stem := idx.files[i].stem
		if strings.Contains(stem, normalized) ||
			strings.Contains(normalized, stem) ||
			strings.Contains(stem, raw) {
			return &idx.files[i]
		}
	}
	return nil
}

// findSkin matches the skin token against the records of one file. An exact
// case-insensitive name match anywhere in the file beats a substring match.
func findSkin(skins []skinRecord, skin string) *skinRecord {
	for i := range skins {
		if strings.EqualFold(skins[i].Name, skin) {
			return &skins[i]
		}
	}

	lowered := strings.ToLower(skin)
	for i := range skins {
		if strings.Contains(strings.ToLower(skins[i].Name), lowered) {
			return &skins[i]
		}
	}
	return nil
}

// normalizeWeapon lowercases the weapon token, replaces spaces with hyphens
// and strips decorative characters, matching the catalog file naming scheme.
func normalizeWeapon(weapon string) string {
	s := strings.ToLower(weapon)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "|", "")
	s = strings.ReplaceAll(s, "'", "")
	return strings.TrimSpace(s)
}

// splitItemName splits an item display name into weapon and skin tokens.
// Names without a delimiter are treated as a bare weapon with no skin.
func splitItemName(itemName string) (weapon, skin string) {
	if weapon, skin, found := strings.Cut(itemName, itemDelimiter); found {
		return strings.TrimSpace(weapon), strings.TrimSpace(skin)
	}
	return strings.TrimSpace(itemName), ""
}

// SkinCount returns the total number of indexed skin records.
func (idx *Index) SkinCount() int {
	count := 0
	for i := range idx.files {
		count += len(idx.files[i].skins)
	}
	return count
}

// FileCount returns the number of loaded catalog files.
func (idx *Index) FileCount() int {
	return len(idx.files)
}

var _ interfaces.Catalog = (*Index)(nil)
