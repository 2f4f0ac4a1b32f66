// Package alphabet holds the static Thai alphabet inventory and the pure
// helpers that filter and search it.
package alphabet

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vytor/thaiflash/internal/models"
)

//go:embed data/thai.yaml
var defaultCatalogYAML []byte

type catalogFile struct {
	Consonants []models.AlphabetItem `yaml:"consonants"`
	Vowels     []models.AlphabetItem `yaml:"vowels"`
	Tones      []models.AlphabetItem `yaml:"tones"`
	Others     []models.AlphabetItem `yaml:"others"`
}

// Default returns the embedded catalog. It panics if the embedded file is
// malformed, which can only happen at build time.
func Default() []models.AlphabetItem {
	items, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("alphabet: embedded catalog is invalid: %v", err))
	}
	return items
}

// Load reads a catalog from path, or returns the embedded one when path is empty.
func Load(path string) ([]models.AlphabetItem, error) {
	if path == "" {
		return Parse(defaultCatalogYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes catalog YAML and checks that every entry has a symbol, a
// known type, and an order that no other entry uses.
func Parse(data []byte) ([]models.AlphabetItem, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	items := make([]models.AlphabetItem, 0, len(f.Consonants)+len(f.Vowels)+len(f.Tones)+len(f.Others))
	items = append(items, f.Consonants...)
	items = append(items, f.Vowels...)
	items = append(items, f.Tones...)
	items = append(items, f.Others...)

	orders := make(map[int]string, len(items))
	symbols := make(map[string]bool, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Symbol) == "" {
			return nil, fmt.Errorf("item with order %d has no symbol", it.Order)
		}
		if !it.Type.Valid() {
			return nil, fmt.Errorf("item %q has unknown type %q", it.Symbol, it.Type)
		}
		if prev, ok := orders[it.Order]; ok {
			return nil, fmt.Errorf("items %q and %q share order %d", prev, it.Symbol, it.Order)
		}
		if symbols[it.Symbol] {
			return nil, fmt.Errorf("duplicate symbol %q", it.Symbol)
		}
		orders[it.Order] = it.Symbol
		symbols[it.Symbol] = true
	}
	return items, nil
}

// FilterByTypes returns the items whose type is in types, keeping their
// relative order. An empty types slice selects nothing.
func FilterByTypes(catalog []models.AlphabetItem, types []models.AlphabetType) []models.AlphabetItem {
	out := make([]models.AlphabetItem, 0, len(catalog))
	if len(types) == 0 {
		return out
	}
	for _, it := range catalog {
		for _, t := range types {
			if it.Type == t {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// SortByOrder returns a copy of items sorted by Order ascending.
func SortByOrder(items []models.AlphabetItem) []models.AlphabetItem {
	out := append([]models.AlphabetItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// IndexOf returns the position of the item with the given symbol, or -1.
func IndexOf(items []models.AlphabetItem, symbol string) int {
	for i, it := range items {
		if it.Symbol == symbol {
			return i
		}
	}
	return -1
}

// Find looks an item up by exact symbol.
func Find(items []models.AlphabetItem, symbol string) (models.AlphabetItem, bool) {
	if i := IndexOf(items, symbol); i >= 0 {
		return items[i], true
	}
	return models.AlphabetItem{}, false
}

// Lookup resolves free text typed by a learner. It accepts the symbol itself,
// the transliterated name ("gaw gai", case-insensitive, extra spaces ignored)
// or the native name ("กอไก่").
func Lookup(items []models.AlphabetItem, text string) (models.AlphabetItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.AlphabetItem{}, false
	}
	if it, ok := Find(items, text); ok {
		return it, true
	}

	folded := normalize(text)
	for _, it := range items {
		if name := it.TransliteratedName(); name != "" && normalize(name) == folded {
			return it, true
		}
		if name := it.NativeName(); name != "" && strings.ReplaceAll(text, " ", "") == name {
			return it, true
		}
	}
	return models.AlphabetItem{}, false
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
