package canvas

import (
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"

	"github.com/pagesmith/pagesmith/pkg/errors"
	"github.com/pagesmith/pagesmith/pkg/observability"
)

// =============================================================================
// Drop Payload
// =============================================================================

// DropPayload is the drag transfer blob produced by the catalog UI,
// encoded as a JSON text blob and decoded at drop time.
type DropPayload struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// DecodeDropPayload parses a drag transfer blob. Malformed or non-JSON
// payloads yield an INVALID_PAYLOAD error and never mutate any state.
func DecodeDropPayload(raw string) (DropPayload, error) {
	var p DropPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return DropPayload{}, errors.Wrap(errors.ErrCodeInvalidPayload, err, "malformed drop payload")
	}
	if p.Type == "" {
		return DropPayload{}, errors.New(errors.ErrCodeInvalidPayload, "drop payload has no component type")
	}
	return p, nil
}

// =============================================================================
// Controller - Pointer Interaction State Machine
// =============================================================================

// dragState is the reposition machine state. Dragging is the only
// non-idle state; there are no queued or multi-drag states.
type dragState int

const (
	stateIdle dragState = iota
	stateDragging
)

// Controller turns raw pointer and drag events into store mutations. Two
// interaction modes coexist without interfering:
//
//   - Placement: HandleDrop (external drag payload) and SelectEntry
//     (catalog selection) append new components.
//   - Reposition: BeginDrag/MoveDrag/EndDrag move an existing component.
//     While a reposition session is active, canvas drops are suppressed
//     so an in-progress drag never registers as a new external drop.
//
// The controller never registers event listeners itself; the host event
// layer invokes the transition methods in delivery order.
type Controller struct {
	store  *Store
	logger *log.Logger

	state      dragState
	dragID     int64
	grabOffset Point
}

// NewController creates a controller mutating the given store.
// A nil logger discards log output.
func NewController(store *Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Controller{store: store, logger: logger}
}

// Store returns the placement store the controller mutates.
func (c *Controller) Store() *Store {
	return c.store
}

// Dragging reports whether a reposition session is active.
func (c *Controller) Dragging() bool {
	return c.state == stateDragging
}

// HandleDrop processes an external drag payload dropped at the absolute
// pointer position at. Drop coordinates are translated to canvas-relative,
// biased so the component centers on the cursor, clamped, and appended
// with the active region.
//
// The returned bool reports whether a component was placed. Decode
// failures are logged and returned without mutating the store; a drop
// during an active reposition session is silently suppressed.
func (c *Controller) HandleDrop(raw string, at Point, canvas Rect) (PlacedComponent, bool, error) {
	if c.state == stateDragging {
		c.logger.Debug("drop suppressed during reposition session")
		return PlacedComponent{}, false, nil
	}

	payload, err := DecodeDropPayload(raw)
	if err != nil {
		c.logger.Warn("ignoring malformed drop payload", "err", err)
		return PlacedComponent{}, false, err
	}

	pos := at.Sub(canvas.Origin())
	pos = Point{X: pos.X - dropBiasX, Y: pos.Y - dropBiasY}
	pos = Clamp(pos, canvas)

	placed := c.store.Append(PlacedComponent{
		Type:     ComponentType(payload.Type),
		Label:    payload.Content,
		Region:   c.store.ActiveRegion(),
		Position: pos,
	})
	c.logger.Debug("placed component from drop",
		"id", placed.ID, "type", placed.Type, "region", placed.Region,
		"x", pos.X, "y", pos.Y)
	observability.Canvas().OnPlace(placed.ID, string(placed.Type), string(placed.Region))
	return placed, true, nil
}

// SelectEntry places a catalog entry without a drag. The position is
// deterministic: fixed x, stacking downward from the active region's
// baseline by the number of components already in that region, clamped
// to the canvas like any other placement. This gives a simple top-down
// stack per region without overlap in the common case; once the stack
// reaches the canvas bottom, further entries pile up at the clamp edge.
func (c *Controller) SelectEntry(entry CatalogEntry, canvas Rect) PlacedComponent {
	region := c.store.ActiveRegion()
	pos := Clamp(Point{
		X: selectPlaceX,
		Y: region.Baseline() + stackSpacing*float64(c.store.CountIn(region)),
	}, canvas)

	placed := c.store.Append(PlacedComponent{
		Type:     entry.Type,
		Label:    entry.Label,
		Region:   region,
		Position: pos,
	})
	c.logger.Debug("placed component from catalog",
		"id", placed.ID, "type", placed.Type, "region", region, "y", pos.Y)
	observability.Canvas().OnPlace(placed.ID, string(placed.Type), string(region))
	return placed
}

// BeginDrag starts a reposition session on the component with the given
// id, capturing the pointer offset within the component at press time.
// A stale id leaves the machine idle and reports false.
func (c *Controller) BeginDrag(id int64, pointer Point, canvas Rect) bool {
	comp, ok := c.store.Get(id)
	if !ok {
		c.logger.Debug("ignoring drag on unknown component", "id", id)
		return false
	}
	c.state = stateDragging
	c.dragID = id
	c.grabOffset = pointer.Sub(canvas.Origin()).Sub(comp.Position)
	return true
}

// MoveDrag updates the dragged component's position from the current
// absolute pointer position: canvas-relative pointer minus the captured
// grab offset, clamped to the canvas. Outside a session this is a no-op,
// as is a component deleted mid-drag.
func (c *Controller) MoveDrag(pointer Point, canvas Rect) {
	if c.state != stateDragging {
		return
	}
	pos := pointer.Sub(canvas.Origin()).Sub(c.grabOffset)
	c.store.UpdatePosition(c.dragID, pos, canvas)
	observability.Canvas().OnMove(c.dragID)
}

// EndDrag finalizes the reposition session at the last computed position.
// Release always commits; there is no separate abort path.
func (c *Controller) EndDrag() {
	c.state = stateIdle
	c.dragID = 0
	c.grabOffset = Point{}
}

// Delete removes a placed component by id. The host's delete affordance
// intercepts the press before the reposition machine sees it, so Delete
// never interacts with drag state. Deleting an absent id is a no-op.
func (c *Controller) Delete(id int64) {
	c.store.Remove(id)
	observability.Canvas().OnRemove(id)
}

// SetActiveRegion changes the region used for catalog lookup and
// placement defaults. Invoked by the host's region navigation.
func (c *Controller) SetActiveRegion(r Region) error {
	if !r.Valid() {
		return errors.New(errors.ErrCodeInvalidRegion, "invalid region: %q", string(r))
	}
	c.store.SetActiveRegion(r)
	return nil
}

// Reset clears the store and resets the active region to header.
// Any in-flight reposition session is discarded.
func (c *Controller) Reset() {
	c.EndDrag()
	c.store.Clear()
	observability.Canvas().OnClear()
}
