package markup

import (
	"strings"
	"testing"

	"github.com/pagesmith/pagesmith/pkg/canvas"
)

func placed(id int64, typ canvas.ComponentType, label string, region canvas.Region) canvas.PlacedComponent {
	return canvas.PlacedComponent{ID: id, Type: typ, Label: label, Region: region}
}

func TestGenerateEmptyCanvas(t *testing.T) {
	_, err := Generate(nil)
	if err != ErrEmptyCanvas {
		t.Errorf("Generate(nil) error = %v, want ErrEmptyCanvas", err)
	}

	_, err = Generate([]canvas.PlacedComponent{})
	if err != ErrEmptyCanvas {
		t.Errorf("Generate(empty) error = %v, want ErrEmptyCanvas", err)
	}
}

func TestGenerateDocumentStructure(t *testing.T) {
	out, err := Generate([]canvas.PlacedComponent{
		placed(1, canvas.TypeHeading, "Welcome", canvas.RegionHeader),
		placed(2, canvas.TypeButton, "Sign Up", canvas.RegionBody),
		placed(3, canvas.TypeSocial, "", canvas.RegionFooter),
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<header>", "</header>",
		"<main>", "</main>",
		"<footer>", "</footer>",
		"Welcome",
		"Sign Up",
		`class="social"`,
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Region containers appear in document order.
	if strings.Index(out, "<header>") > strings.Index(out, "<main>") ||
		strings.Index(out, "<main>") > strings.Index(out, "<footer>") {
		t.Error("region containers out of document order")
	}
}

func TestGenerateEmptyRegionSentinel(t *testing.T) {
	out, err := Generate([]canvas.PlacedComponent{
		placed(1, canvas.TypeButton, "Click", canvas.RegionBody),
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !strings.Contains(out, "<!-- header: empty -->") {
		t.Error("missing header empty sentinel")
	}
	if !strings.Contains(out, "<!-- footer: empty -->") {
		t.Error("missing footer empty sentinel")
	}
	if strings.Contains(out, "<!-- body: empty -->") {
		t.Error("body sentinel present despite placed component")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	components := []canvas.PlacedComponent{
		placed(1, canvas.TypeHeading, "Title", canvas.RegionHeader),
		placed(2, canvas.TypeParagraph, "Body copy", canvas.RegionBody),
		placed(3, canvas.TypeButton, "Go", canvas.RegionBody),
		placed(4, canvas.TypeCopyright, "2026 Example", canvas.RegionFooter),
	}

	first, err := Generate(components)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		out, err := Generate(components)
		if err != nil {
			t.Fatal(err)
		}
		if out != first {
			t.Fatal("Generate() is not deterministic")
		}
	}
}

func TestGeneratePreservesInsertionOrderWithinRegion(t *testing.T) {
	out, err := Generate([]canvas.PlacedComponent{
		placed(1, canvas.TypeButton, "First", canvas.RegionBody),
		placed(2, canvas.TypeButton, "Second", canvas.RegionBody),
		placed(3, canvas.TypeButton, "Third", canvas.RegionBody),
	})
	if err != nil {
		t.Fatal(err)
	}

	a, b, c := strings.Index(out, "First"), strings.Index(out, "Second"), strings.Index(out, "Third")
	if !(a < b && b < c) {
		t.Errorf("insertion order not preserved: %d, %d, %d", a, b, c)
	}
}

func TestGenerateInterleavedRegions(t *testing.T) {
	// Region assignment, not placement order, decides the container.
	out, err := Generate([]canvas.PlacedComponent{
		placed(1, canvas.TypeCopyright, "Footer first", canvas.RegionFooter),
		placed(2, canvas.TypeHeading, "Header second", canvas.RegionHeader),
	})
	if err != nil {
		t.Fatal(err)
	}

	if strings.Index(out, "Header second") > strings.Index(out, "Footer first") {
		t.Error("header content rendered after footer content")
	}
}

func TestGenerateEscapesLabels(t *testing.T) {
	out, err := Generate([]canvas.PlacedComponent{
		placed(1, canvas.TypeParagraph, `<script>alert("x")</script>`, canvas.RegionBody),
	})
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(out, "<script>") {
		t.Error("label not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped label missing from output")
	}
}

func TestGenerateUnknownTypeFallback(t *testing.T) {
	out, err := Generate([]canvas.PlacedComponent{
		placed(1, canvas.ComponentType("widget"), "Custom", canvas.RegionBody),
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, `<div class="component">Custom</div>`) {
		t.Error("unknown type did not use the generic wrapper")
	}
}

func TestTemplatesCoverCatalog(t *testing.T) {
	// Every catalog type must have a dedicated template; falling back to
	// the generic wrapper for a known type means a missing case.
	generic := templateFor(canvas.PlacedComponent{Type: "definitely-not-real", Label: "probe"})

	for _, entry := range canvas.Catalog() {
		got := templateFor(canvas.PlacedComponent{Type: entry.Type, Label: "probe"})
		if got == generic {
			t.Errorf("catalog type %q falls back to the generic wrapper", entry.Type)
		}
	}
}
