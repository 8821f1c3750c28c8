package render

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollInput turns this tick's mouse and keyboard state into controller events.
func (h *Host) pollInput(now time.Time) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	inside := cx >= 0 && cy >= 0 && cx < h.width && cy < h.height

	switch {
	case inside && (!h.pointerInside || x != h.lastX || y != h.lastY):
		h.ctrl.PointerMove(x, y)
	case !inside && h.pointerInside:
		h.ctrl.PointerLeave()
	}
	h.pointerInside = inside
	h.lastX, h.lastY = x, y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inside {
		h.ctrl.PointerDown(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.ctrl.PointerUp(x, y, now)
	}
	if _, dy := ebiten.Wheel(); dy != 0 && inside {
		h.ctrl.Wheel(dy)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.ctrl.ClosePopup(now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		h.captureNext = true
	}
}

// cursorShape mirrors interaction state on the mouse cursor.
func (h *Host) cursorShape() ebiten.CursorShapeType {
	if p := h.ctrl.Popup(); p != nil && p.Dragging() {
		return ebiten.CursorShapeMove
	}
	// Hover ignores the globe body, so a marker on the far side can be hovered.
	// Only a marker the layout pass drew gets the pointer.
	if m := h.ctrl.Hover().Hovered(); m != nil {
		if _, _, ok := m.OnScreen(); ok {
			return ebiten.CursorShapePointer
		}
	}
	return ebiten.CursorShapeDefault
}
