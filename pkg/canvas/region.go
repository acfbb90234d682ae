package canvas

import (
	"github.com/pagesmith/pagesmith/pkg/errors"
)

// =============================================================================
// Region - Fixed Page Zones
// =============================================================================

// Region identifies one of the three fixed page zones a component can
// belong to. The set is closed: no dynamic region registration exists.
type Region string

// The three page regions, in document order.
const (
	RegionHeader Region = "header"
	RegionBody   Region = "body"
	RegionFooter Region = "footer"
)

// DefaultRegion is the active region at session start and after a reset.
const DefaultRegion = RegionHeader

// Select-to-place stacking baselines per region. These are fixed vertical
// offsets; select-to-place stacks components downward from them.
const (
	baselineHeader = 20.0
	baselineBody   = 200.0
	baselineFooter = 600.0
)

// Regions returns all regions in page order.
func Regions() []Region {
	return []Region{RegionHeader, RegionBody, RegionFooter}
}

// Valid reports whether r is one of the three fixed regions.
func (r Region) Valid() bool {
	switch r {
	case RegionHeader, RegionBody, RegionFooter:
		return true
	}
	return false
}

// ParseRegion converts a string to a Region.
// Returns an INVALID_REGION error for anything outside the fixed set.
func ParseRegion(s string) (Region, error) {
	r := Region(s)
	if !r.Valid() {
		return "", errors.New(errors.ErrCodeInvalidRegion, "invalid region: %q (must be one of: header, body, footer)", s)
	}
	return r, nil
}

// Label returns the display label for the region.
func (r Region) Label() string {
	switch r {
	case RegionHeader:
		return "Header"
	case RegionBody:
		return "Body"
	case RegionFooter:
		return "Footer"
	}
	return string(r)
}

// Baseline returns the fixed vertical offset where select-to-place
// stacking starts for the region.
func (r Region) Baseline() float64 {
	switch r {
	case RegionHeader:
		return baselineHeader
	case RegionBody:
		return baselineBody
	case RegionFooter:
		return baselineFooter
	}
	return baselineHeader
}

// =============================================================================
// Band - Vertical Region Bands
// =============================================================================

// Band is the vertical slice of the canvas assigned to a region.
type Band struct {
	Top    float64
	Bottom float64
}

// Contains reports whether the vertical coordinate y falls inside the band.
func (b Band) Contains(y float64) bool {
	return y >= b.Top && y < b.Bottom
}

// Band maps the region to its vertical band of the canvas. The header band
// runs from the canvas top to the body baseline, the body band from there
// to the footer baseline, and the footer band to the canvas bottom.
func (r Region) Band(canvas Rect) Band {
	switch r {
	case RegionHeader:
		return Band{Top: 0, Bottom: baselineBody}
	case RegionBody:
		return Band{Top: baselineBody, Bottom: baselineFooter}
	case RegionFooter:
		return Band{Top: baselineFooter, Bottom: canvas.Height}
	}
	return Band{Top: 0, Bottom: canvas.Height}
}
