package canvas

// =============================================================================
// ComponentType - Placeable Archetypes
// =============================================================================

// ComponentType tags a placed component with its archetype. The type
// determines which markup template the generator substitutes.
type ComponentType string

// Component archetypes known to the catalog.
const (
	TypeHeading    ComponentType = "heading"
	TypeNavigation ComponentType = "navigation"
	TypeLogo       ComponentType = "logo"
	TypeButton     ComponentType = "button"
	TypeParagraph  ComponentType = "paragraph"
	TypeImage      ComponentType = "image"
	TypeForm       ComponentType = "form"
	TypeCopyright  ComponentType = "copyright"
	TypeSocial     ComponentType = "social"
	TypeContact    ComponentType = "contact"
)

// =============================================================================
// CatalogEntry - Selectable Archetypes Per Region
// =============================================================================

// CatalogEntry describes a placeable component archetype scoped to a region.
// Entries are static: defined once at startup and never mutated.
type CatalogEntry struct {
	Type   ComponentType `json:"type"`
	Label  string        `json:"label"`
	Region Region        `json:"region"`
}

// catalog is the full archetype list, in region then display order.
var catalog = []CatalogEntry{
	{Type: TypeHeading, Label: "Heading", Region: RegionHeader},
	{Type: TypeNavigation, Label: "Navigation Bar", Region: RegionHeader},
	{Type: TypeLogo, Label: "Logo", Region: RegionHeader},
	{Type: TypeButton, Label: "Button", Region: RegionBody},
	{Type: TypeParagraph, Label: "Paragraph", Region: RegionBody},
	{Type: TypeImage, Label: "Image", Region: RegionBody},
	{Type: TypeForm, Label: "Contact Form", Region: RegionBody},
	{Type: TypeCopyright, Label: "Copyright Notice", Region: RegionFooter},
	{Type: TypeSocial, Label: "Social Links", Region: RegionFooter},
	{Type: TypeContact, Label: "Contact Info", Region: RegionFooter},
}

// Catalog returns a copy of the full component catalog.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogFor returns the catalog subset valid for selection in the region.
func CatalogFor(r Region) []CatalogEntry {
	var out []CatalogEntry
	for _, e := range catalog {
		if e.Region == r {
			out = append(out, e)
		}
	}
	return out
}

// LookupEntry finds the catalog entry for a type within a region.
func LookupEntry(r Region, t ComponentType) (CatalogEntry, bool) {
	for _, e := range catalog {
		if e.Region == r && e.Type == t {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// KnownType reports whether t appears anywhere in the catalog.
// Unknown types are still renderable (the generator falls back to a
// generic wrapper) but cannot be created through the catalog.
func KnownType(t ComponentType) bool {
	for _, e := range catalog {
		if e.Type == t {
			return true
		}
	}
	return false
}
