package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/cloon/internal/model"
)

// JSON-backed garment catalog. Single file, human-readable, read-mostly.
// The tried-on queue itself is never written here.

const DefaultFileName = "catalog.json"

// Load reads the catalog at path. A missing file yields the sample catalog.
func Load(path string) ([]model.Garment, error) {
	if path == "" {
		return Sample(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Sample(), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var garments []model.Garment
	if err := json.Unmarshal(b, &garments); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	seen := make(map[string]int, len(garments))
	for i := range garments {
		id := garments[i].ID
		if id == "" {
			return nil, fmt.Errorf("garment %d: missing id", i+1)
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("garment %d: duplicate id %q (first at %d)", i+1, id, first)
		}
		seen[id] = i + 1
		if garments[i].Category == "" {
			garments[i].Category = model.CategoryFeed
		}
	}
	return garments, nil
}

// Save writes garments to path, creating the parent directory if needed.
func Save(path string, garments []model.Garment) error {
	if path == "" {
		return fmt.Errorf("save: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(garments, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func unsplash(photo string) string {
	return "https://images.unsplash.com/photo-" + photo + "?w=400&h=800&fit=crop"
}

// Sample is the built-in catalog: a swipe feed plus a small closet.
func Sample() []model.Garment {
	return []model.Garment{
		{ID: "item-1", Brand: "StyleCo", Image: unsplash("1515886657613-9f3515b0c78f"), TriedOnCount: "2.1K", Category: model.CategoryFeed},
		{ID: "item-2", Brand: "TrendLab", Image: unsplash("1469334031218-e382a71b716b"), TriedOnCount: "3.5K", Category: model.CategoryFeed},
		{ID: "item-3", Brand: "ModernWear", Image: unsplash("1490481651871-ab68de25d43d"), TriedOnCount: "1.8K", Category: model.CategoryFeed},
		{ID: "item-4", Brand: "ChicStyle", Image: unsplash("1445205170230-053b83016050"), TriedOnCount: "4.2K", Category: model.CategoryFeed},
		{ID: "item-5", Brand: "UrbanFit", Image: unsplash("1483985988355-763728e1935b"), TriedOnCount: "6.7K", Category: model.CategoryFeed},
		{ID: "item-6", Brand: "FashionHub", Image: unsplash("1492707892479-7bc8d5a4ee93"), TriedOnCount: "5.3K", Category: model.CategoryFeed},
		{ID: "item-7", Brand: "StyleStreet", Image: unsplash("1509631179647-0177331693ae"), TriedOnCount: "2.8K", Category: model.CategoryFeed},
		{ID: "item-8", Brand: "TrendSetter", Image: unsplash("1485968579580-b6d095142e6e"), TriedOnCount: "7.1K", Category: model.CategoryFeed},
		{ID: "closet-1", Name: "Red Jacket", Image: "https://picsum.photos/seed/closet-1/400/600", Category: model.CategoryCloset},
		{ID: "closet-2", Name: "Blue Jeans", Image: "https://picsum.photos/seed/closet-2/400/600", Category: model.CategoryCloset},
		{ID: "closet-3", Name: "White Sneakers", Image: "https://picsum.photos/seed/closet-3/400/600", Category: model.CategoryCloset},
		{ID: "closet-4", Name: "Linen Shirt", Image: "https://picsum.photos/seed/closet-4/400/600", Category: model.CategoryCloset},
		{ID: "closet-5", Name: "Wool Coat", Image: "https://picsum.photos/seed/closet-5/400/600", Category: model.CategoryCloset},
	}
}
