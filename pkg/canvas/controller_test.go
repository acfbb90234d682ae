package canvas

import (
	"testing"

	"github.com/pagesmith/pagesmith/pkg/errors"
)

func newTestController() *Controller {
	return NewController(NewStore(), nil)
}

const buttonPayload = `{"id":"button","content":"Button","type":"button"}`

func TestHandleDrop(t *testing.T) {
	ctl := newTestController()

	placed, ok, err := ctl.HandleDrop(buttonPayload, Point{X: 300, Y: 300}, testRect())
	if err != nil {
		t.Fatalf("HandleDrop() error: %v", err)
	}
	if !ok {
		t.Fatal("HandleDrop() ok = false")
	}

	// Drop position is biased so the component centers on the cursor.
	want := Point{X: 250, Y: 275}
	if placed.Position != want {
		t.Errorf("position = %v, want %v", placed.Position, want)
	}
	if placed.Region != RegionHeader {
		t.Errorf("region = %v, want active region header", placed.Region)
	}
	if placed.Type != TypeButton || placed.Label != "Button" {
		t.Errorf("placed = %+v", placed)
	}
}

func TestHandleDropTranslatesCanvasOrigin(t *testing.T) {
	ctl := newTestController()
	offset := Rect{X: 100, Y: 50, Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}

	placed, _, err := ctl.HandleDrop(buttonPayload, Point{X: 400, Y: 350}, offset)
	if err != nil {
		t.Fatalf("HandleDrop() error: %v", err)
	}

	// (400-100-50, 350-50-25) = (250, 275)
	want := Point{X: 250, Y: 275}
	if placed.Position != want {
		t.Errorf("position = %v, want %v", placed.Position, want)
	}
}

func TestHandleDropClampsNearEdges(t *testing.T) {
	ctl := newTestController()

	placed, _, err := ctl.HandleDrop(buttonPayload, Point{X: 0, Y: 0}, testRect())
	if err != nil {
		t.Fatalf("HandleDrop() error: %v", err)
	}
	if placed.Position != (Point{X: 0, Y: 0}) {
		t.Errorf("position = %v, want origin", placed.Position)
	}
}

func TestHandleDropMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not json at all"},
		{"empty", ""},
		{"missing type", `{"id":"x","content":"y"}`},
		{"wrong shape", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl := newTestController()

			_, ok, err := ctl.HandleDrop(tt.raw, Point{X: 100, Y: 100}, testRect())
			if ok {
				t.Error("malformed payload placed a component")
			}
			if !errors.Is(err, errors.ErrCodeInvalidPayload) {
				t.Errorf("error = %v, want INVALID_PAYLOAD", err)
			}
			if ctl.Store().Len() != 0 {
				t.Error("malformed payload mutated the store")
			}
		})
	}
}

func TestHandleDropSuppressedDuringDrag(t *testing.T) {
	ctl := newTestController()
	placed, _, _ := ctl.HandleDrop(buttonPayload, Point{X: 300, Y: 300}, testRect())

	if !ctl.BeginDrag(placed.ID, Point{X: 260, Y: 280}, testRect()) {
		t.Fatal("BeginDrag() = false")
	}

	_, ok, err := ctl.HandleDrop(buttonPayload, Point{X: 500, Y: 500}, testRect())
	if ok || err != nil {
		t.Errorf("drop during drag: ok = %v, err = %v, want silent suppression", ok, err)
	}
	if ctl.Store().Len() != 1 {
		t.Errorf("Len() = %d, want 1", ctl.Store().Len())
	}

	// After release, drops register again.
	ctl.EndDrag()
	_, ok, _ = ctl.HandleDrop(buttonPayload, Point{X: 500, Y: 500}, testRect())
	if !ok {
		t.Error("drop after EndDrag() suppressed")
	}
}

func TestSelectEntryStacksPerRegion(t *testing.T) {
	ctl := newTestController()
	if err := ctl.SetActiveRegion(RegionBody); err != nil {
		t.Fatal(err)
	}
	entry, _ := LookupEntry(RegionBody, TypeButton)

	wantY := []float64{200, 280, 360}
	for i, y := range wantY {
		placed := ctl.SelectEntry(entry, testRect())
		if placed.Position.X != 50 {
			t.Errorf("component %d: x = %v, want 50", i, placed.Position.X)
		}
		if placed.Position.Y != y {
			t.Errorf("component %d: y = %v, want %v", i, placed.Position.Y, y)
		}
	}
}

func TestSelectEntryStacksIndependentlyPerRegion(t *testing.T) {
	ctl := newTestController()

	heading, _ := LookupEntry(RegionHeader, TypeHeading)
	first := ctl.SelectEntry(heading, testRect())
	if first.Position.Y != 20 {
		t.Errorf("header y = %v, want baseline 20", first.Position.Y)
	}

	// The footer stack starts at its own baseline regardless of other regions.
	ctl.SetActiveRegion(RegionFooter)
	social, _ := LookupEntry(RegionFooter, TypeSocial)
	second := ctl.SelectEntry(social, testRect())
	if second.Position.Y != 600 {
		t.Errorf("footer y = %v, want baseline 600", second.Position.Y)
	}
}

func TestSelectEntryClampsNearCanvasBottom(t *testing.T) {
	// The footer baseline leaves room for exactly one unclamped stack
	// step on the default canvas; every later selection pins to the
	// bottom clamp edge instead of overflowing.
	ctl := newTestController()
	ctl.SetActiveRegion(RegionFooter)
	entry, _ := LookupEntry(RegionFooter, TypeSocial)

	maxY := DefaultCanvasHeight - FootprintHeight
	wantY := []float64{600, 680, maxY, maxY}
	for i, y := range wantY {
		placed := ctl.SelectEntry(entry, testRect())
		if placed.Position.Y != y {
			t.Errorf("component %d: y = %v, want %v", i, placed.Position.Y, y)
		}
		if placed.Position.Y > maxY {
			t.Errorf("component %d: y = %v outside canvas (max %v)", i, placed.Position.Y, maxY)
		}
	}
}

func TestBeginDragUnknownID(t *testing.T) {
	ctl := newTestController()

	if ctl.BeginDrag(42, Point{X: 0, Y: 0}, testRect()) {
		t.Error("BeginDrag() on unknown id = true")
	}
	if ctl.Dragging() {
		t.Error("Dragging() = true after failed BeginDrag")
	}
}

func TestDragPreservesGrabOffset(t *testing.T) {
	ctl := newTestController()
	placed, _, _ := ctl.HandleDrop(buttonPayload, Point{X: 300, Y: 300}, testRect())
	// Component sits at (250, 275); grab it 10,5 inside its corner.
	ctl.BeginDrag(placed.ID, Point{X: 260, Y: 280}, testRect())

	ctl.MoveDrag(Point{X: 460, Y: 380}, testRect())

	got, _ := ctl.Store().Get(placed.ID)
	want := Point{X: 450, Y: 375}
	if got.Position != want {
		t.Errorf("position = %v, want %v", got.Position, want)
	}
}

func TestMoveDragClamps(t *testing.T) {
	ctl := newTestController()
	placed, _, _ := ctl.HandleDrop(buttonPayload, Point{X: 300, Y: 300}, testRect())
	ctl.BeginDrag(placed.ID, Point{X: 250, Y: 275}, testRect())

	ctl.MoveDrag(Point{X: 5000, Y: 5000}, testRect())

	got, _ := ctl.Store().Get(placed.ID)
	want := Point{X: 1050, Y: 720}
	if got.Position != want {
		t.Errorf("position = %v, want %v", got.Position, want)
	}
}

func TestMoveDragOutsideSession(t *testing.T) {
	ctl := newTestController()
	placed, _, _ := ctl.HandleDrop(buttonPayload, Point{X: 300, Y: 300}, testRect())

	ctl.MoveDrag(Point{X: 900, Y: 600}, testRect())

	got, _ := ctl.Store().Get(placed.ID)
	if got.Position != (Point{X: 250, Y: 275}) {
		t.Errorf("MoveDrag outside session moved component to %v", got.Position)
	}
}

func TestMoveDragComponentDeletedMidDrag(t *testing.T) {
	ctl := newTestController()
	placed, _, _ := ctl.HandleDrop(buttonPayload, Point{X: 300, Y: 300}, testRect())
	ctl.BeginDrag(placed.ID, Point{X: 250, Y: 275}, testRect())

	ctl.Delete(placed.ID)
	ctl.MoveDrag(Point{X: 600, Y: 400}, testRect())
	ctl.EndDrag()

	if ctl.Store().Len() != 0 {
		t.Errorf("Len() = %d, want 0", ctl.Store().Len())
	}
}

func TestDeleteIdempotent(t *testing.T) {
	ctl := newTestController()
	placed, _, _ := ctl.HandleDrop(buttonPayload, Point{X: 300, Y: 300}, testRect())

	ctl.Delete(placed.ID)
	ctl.Delete(placed.ID)

	if ctl.Store().Len() != 0 {
		t.Errorf("Len() = %d, want 0", ctl.Store().Len())
	}
}

func TestSetActiveRegionInvalid(t *testing.T) {
	ctl := newTestController()

	err := ctl.SetActiveRegion(Region("sidebar"))
	if !errors.Is(err, errors.ErrCodeInvalidRegion) {
		t.Errorf("error = %v, want INVALID_REGION", err)
	}
	if ctl.Store().ActiveRegion() != RegionHeader {
		t.Error("invalid region changed the active region")
	}
}

func TestResetDiscardsDragSession(t *testing.T) {
	ctl := newTestController()
	placed, _, _ := ctl.HandleDrop(buttonPayload, Point{X: 300, Y: 300}, testRect())
	ctl.SetActiveRegion(RegionFooter)
	ctl.BeginDrag(placed.ID, Point{X: 250, Y: 275}, testRect())

	ctl.Reset()

	if ctl.Dragging() {
		t.Error("Dragging() = true after reset")
	}
	if ctl.Store().Len() != 0 {
		t.Errorf("Len() = %d after reset, want 0", ctl.Store().Len())
	}
	if ctl.Store().ActiveRegion() != RegionHeader {
		t.Errorf("ActiveRegion() = %v after reset, want header", ctl.Store().ActiveRegion())
	}
}

func TestDecodeDropPayload(t *testing.T) {
	p, err := DecodeDropPayload(buttonPayload)
	if err != nil {
		t.Fatalf("DecodeDropPayload() error: %v", err)
	}
	if p.Type != "button" || p.Content != "Button" || p.ID != "button" {
		t.Errorf("payload = %+v", p)
	}
}
