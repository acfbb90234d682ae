package markup

import (
	"fmt"
	"strings"

	"github.com/pagesmith/pagesmith/pkg/canvas"
	"github.com/pagesmith/pagesmith/pkg/errors"
)

// ErrEmptyCanvas is returned when generation is requested with no placed
// components. Callers surface this as a blocking user notice; it is never
// an internal failure.
var ErrEmptyCanvas = errors.New(errors.ErrCodeEmptyCanvas, "no components placed on the canvas")

// indent is the indentation applied to rendered fragments inside their
// region container.
const indent = "    "

// documentHead is the static skeleton above the three insertion points:
// document metadata plus minimal structural styling.
const documentHead = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Generated Page</title>
  <style>
    body { margin: 0; font-family: system-ui, sans-serif; }
    header, main, footer { padding: 1rem; }
    header { border-bottom: 1px solid #ddd; }
    footer { border-top: 1px solid #ddd; }
  </style>
</head>
<body>
`

const documentFoot = `</body>
</html>
`

// EmptyRegionComment is the sentinel emitted for a region with no
// components.
func EmptyRegionComment(r canvas.Region) string {
	return fmt.Sprintf("<!-- %s: empty -->", string(r))
}

// Generate serializes placed components into a complete HTML document.
//
// Components are partitioned by region — exhaustively and disjointly,
// preserving original insertion order within each group — rendered
// through their type templates, and embedded into the fixed document
// skeleton. Generate is pure and deterministic: the same input yields
// byte-identical output.
//
// An empty input returns ErrEmptyCanvas.
func Generate(components []canvas.PlacedComponent) (string, error) {
	if len(components) == 0 {
		return "", ErrEmptyCanvas
	}

	groups := partition(components)

	var b strings.Builder
	b.WriteString(documentHead)
	writeRegion(&b, "header", groups[canvas.RegionHeader], canvas.RegionHeader)
	writeRegion(&b, "main", groups[canvas.RegionBody], canvas.RegionBody)
	writeRegion(&b, "footer", groups[canvas.RegionFooter], canvas.RegionFooter)
	b.WriteString(documentFoot)
	return b.String(), nil
}

// partition splits components into region groups, keeping insertion order.
// Every component lands in exactly one group; unknown regions cannot
// occur since Region is validated at creation and deserialization.
func partition(components []canvas.PlacedComponent) map[canvas.Region][]canvas.PlacedComponent {
	groups := make(map[canvas.Region][]canvas.PlacedComponent, 3)
	for _, c := range components {
		groups[c.Region] = append(groups[c.Region], c)
	}
	return groups
}

// writeRegion renders one region group into its container element.
func writeRegion(b *strings.Builder, tag string, comps []canvas.PlacedComponent, r canvas.Region) {
	fmt.Fprintf(b, "  <%s>\n", tag)
	if len(comps) == 0 {
		b.WriteString(indent)
		b.WriteString(EmptyRegionComment(r))
		b.WriteByte('\n')
	}
	for _, c := range comps {
		b.WriteString(indent)
		b.WriteString(templateFor(c))
		b.WriteByte('\n')
	}
	fmt.Fprintf(b, "  </%s>\n", tag)
}
