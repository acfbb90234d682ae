package canvas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pagesmith/pagesmith/pkg/errors"
)

// =============================================================================
// Document - Canvas Serialization
// =============================================================================

// Document is the canonical serialization format for canvas state. Used
// for CLI input, server session payloads, and cache keys.
//
// The format is human-readable and round-trip safe: a store exported with
// FromStore and re-imported with ToStore produces identical placement
// state, including the active region and id continuity.
type Document struct {
	Name         string              `json:"name,omitempty"`
	Canvas       Rect                `json:"canvas"`
	ActiveRegion Region              `json:"active_region,omitempty"`
	Components   []DocumentComponent `json:"components"`
}

// DocumentComponent is the serialized form of a placed component.
type DocumentComponent struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type"`
	Label  string  `json:"label,omitempty"`
	Region Region  `json:"region"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// FromStore converts placement state to its serialization format.
// Components keep their insertion order.
func FromStore(s *Store, canvas Rect) Document {
	comps := s.Components()
	doc := Document{
		Canvas:       canvas,
		ActiveRegion: s.ActiveRegion(),
		Components:   make([]DocumentComponent, len(comps)),
	}
	for i, c := range comps {
		doc.Components[i] = DocumentComponent{
			ID:     c.ID,
			Type:   string(c.Type),
			Label:  c.Label,
			Region: c.Region,
			X:      c.Position.X,
			Y:      c.Position.Y,
		}
	}
	return doc
}

// ToStore converts a document back to a placement store. Regions are
// validated against the fixed set and duplicate ids rejected; component
// types are accepted as-is since the generator handles unknown types with
// a generic fallback. The store's id counter resumes past the highest
// seen id so future appends never reuse one.
func (d Document) ToStore() (*Store, error) {
	s := NewStore()
	if d.ActiveRegion != "" {
		if !d.ActiveRegion.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidRegion, "invalid active region: %q", string(d.ActiveRegion))
		}
		s.active = d.ActiveRegion
	}

	seen := make(map[int64]bool, len(d.Components))
	for _, dc := range d.Components {
		if !dc.Region.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidRegion, "component %d: invalid region: %q", dc.ID, string(dc.Region))
		}
		if seen[dc.ID] {
			return nil, errors.New(errors.ErrCodeInvalidComponent, "duplicate component id: %d", dc.ID)
		}
		seen[dc.ID] = true

		s.components = append(s.components, PlacedComponent{
			ID:       dc.ID,
			Type:     ComponentType(dc.Type),
			Label:    dc.Label,
			Region:   dc.Region,
			Position: Point{X: dc.X, Y: dc.Y},
		})
		if dc.ID >= s.nextID {
			s.nextID = dc.ID + 1
		}
	}
	return s, nil
}

// =============================================================================
// Document I/O
// =============================================================================

// MarshalDocument converts a document to indented JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalDocument deserializes JSON bytes to a document.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}

// WriteDocument writes a document as JSON to w.
func WriteDocument(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// ReadDocument decodes a JSON document from r.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}

// WriteDocumentFile writes a document to a JSON file with 0644 permissions.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(d, f)
}

// ReadDocumentFile reads a JSON file and returns the decoded document.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
