package model

import "maps"

// TriedOnItem is a garment the user marked as tried on.
// Meta is an open bag of display data; nothing in it is validated.
type TriedOnItem struct {
	ID    string         `json:"id"`
	Image string         `json:"image"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// Meta keys written by the catalog and read by the renderers.
const (
	MetaName         = "name"
	MetaBrand        = "brandName"
	MetaTriedOnCount = "triedOnCount"
)

// Name returns the display name, falling back to the brand and then the id.
func (it TriedOnItem) Name() string {
	if s := it.metaString(MetaName); s != "" {
		return s
	}
	if s := it.Brand(); s != "" {
		return s
	}
	return it.ID
}

func (it TriedOnItem) Brand() string { return it.metaString(MetaBrand) }

// Clone copies the item including its meta map.
func (it TriedOnItem) Clone() TriedOnItem {
	if it.Meta != nil {
		it.Meta = maps.Clone(it.Meta)
	}
	return it
}

func (it TriedOnItem) metaString(key string) string {
	if it.Meta == nil {
		return ""
	}
	s, _ := it.Meta[key].(string)
	return s
}
