package domain

import (
	"github.com/google/uuid"
)

// SpaceKind is the closed set of storage container kinds.
type SpaceKind string

const (
	KindFridge       SpaceKind = "fridge"
	KindSnackCabinet SpaceKind = "snack_cabinet"
	KindVanityTable  SpaceKind = "vanity_table"
	KindWineCellar   SpaceKind = "wine_cellar"
	KindCustom       SpaceKind = "custom"
)

func (k SpaceKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the five known kinds.
func (k SpaceKind) Valid() bool {
	_, ok := capabilities[k]
	return ok
}

// Section is a named sub-section within a space.
type Section string

const (
	SectionFrozen       Section = "frozen"
	SectionRefrigerated Section = "refrigerated"
	SectionCosmetics    Section = "cosmetics"
	SectionSkincare     Section = "skincare"
)

// Capabilities are the fixed, kind-derived behavior flags of a space.
type Capabilities struct {
	UsesExpiry     bool
	RequiresPro    bool
	Sections       []Section
	DefaultSection Section
	DefaultColor   string
}

var capabilities = map[SpaceKind]Capabilities{
	KindFridge: {
		UsesExpiry:     true,
		RequiresPro:    false,
		Sections:       []Section{SectionFrozen, SectionRefrigerated},
		DefaultSection: SectionRefrigerated,
		DefaultColor:   "#A8D8EA",
	},
	KindSnackCabinet: {
		UsesExpiry:   true,
		RequiresPro:  true,
		DefaultColor: "#FFDAC1",
	},
	KindVanityTable: {
		UsesExpiry:     true,
		RequiresPro:    true,
		Sections:       []Section{SectionCosmetics, SectionSkincare},
		DefaultSection: SectionSkincare,
		DefaultColor:   "#FCBAD3",
	},
	KindWineCellar: {
		UsesExpiry:   false,
		RequiresPro:  true,
		DefaultColor: "#C7CEEA",
	},
	KindCustom: {
		UsesExpiry:   true,
		RequiresPro:  true,
		DefaultColor: "#B5EAD7",
	},
}

// KindCapabilities returns the capability row for a space kind.
func KindCapabilities(kind SpaceKind) Capabilities {
	return capabilities[kind]
}

// Space is a user-defined storage container holding items. A space
// exclusively owns its items.
type Space struct {
	ID         string    `json:"id"`
	Kind       SpaceKind `json:"kind"`
	CustomName string    `json:"custom_name,omitempty"`
	ColorHex   string    `json:"color_hex"`
	SortOrder  int       `json:"sort_order"`
	Items      []Item    `json:"items"`
}

func NewSpace(kind SpaceKind, customName string, sortOrder int) Space {
	return Space{
		ID:         uuid.NewString(),
		Kind:       kind,
		CustomName: customName,
		ColorHex:   KindCapabilities(kind).DefaultColor,
		SortOrder:  sortOrder,
		Items:      []Item{},
	}
}

// DefaultFridge is the space every installation starts with.
func DefaultFridge() Space {
	return NewSpace(KindFridge, "", 0)
}

// UsesExpiry reports whether items in this space track an expiry date.
// Wine cellars track stored duration instead.
func (s *Space) UsesExpiry() bool {
	return KindCapabilities(s.Kind).UsesExpiry
}

// Sections returns the named sub-sections of this space, empty for
// kinds without sections.
func (s *Space) Sections() []Section {
	return KindCapabilities(s.Kind).Sections
}

// HasSection reports whether sec is a valid section of this space.
func (s *Space) HasSection(sec Section) bool {
	for _, candidate := range s.Sections() {
		if candidate == sec {
			return true
		}
	}
	return false
}

// FindItem returns the index of the item with the given id, or -1.
func (s *Space) FindItem(itemID string) int {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
