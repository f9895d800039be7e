package model

// Category tells where a garment shows up.
type Category string

const (
	CategoryFeed   Category = "feed"   // wardrobe swipe feed
	CategoryCloset Category = "closet" // the user's own closet grid
)

// Garment is a catalog entry.
type Garment struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Image        string   `json:"image"`
	TriedOnCount string   `json:"tried_on_count,omitempty"` // display string, e.g. "2.1K"
	Category     Category `json:"category"`
}

// TriedOn builds the queue entry for g. Empty fields are left out of meta.
func (g Garment) TriedOn() TriedOnItem {
	meta := map[string]any{}
	if g.Name != "" {
		meta[MetaName] = g.Name
	}
	if g.Brand != "" {
		meta[MetaBrand] = g.Brand
	}
	if g.TriedOnCount != "" {
		meta[MetaTriedOnCount] = g.TriedOnCount
	}
	return TriedOnItem{ID: g.ID, Image: g.Image, Meta: meta}
}

// Title is what lists print for g.
func (g Garment) Title() string {
	switch {
	case g.Name != "" && g.Brand != "":
		return g.Name + " · " + g.Brand
	case g.Name != "":
		return g.Name
	case g.Brand != "":
		return g.Brand
	}
	return g.ID
}
