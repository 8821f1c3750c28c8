package globe

import (
	"time"

	"github.com/google/uuid"
)

// PopupPhase is the lifecycle phase of a popup.
type PopupPhase int

const (
	PopupOpening PopupPhase = iota
	PopupClosing
)

func (p PopupPhase) String() string {
	if p == PopupClosing {
		return "closing"
	}
	return "open"
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PopupSession is the photo popup for one city. At most one exists at a time.
type PopupSession struct {
	ID      string
	City    string
	Country string
	Images  []string

	Bounds  Rect
	Opacity float64
	Phase   PopupPhase

	OpenedAt time.Time
	removeAt time.Time

	dragging               bool
	dragOffsetX, dragOffsetY float64
}

const (
	popupWidth    = 360.0
	popupHeight   = 340.0
	popupMargin   = 40.0
	closeBtnW     = 96.0
	closeBtnH     = 30.0
	closeBtnInset = 14.0
)

func newPopupSession(city, country string, images []string, viewportW, viewportH float64, now time.Time) *PopupSession {
	x := viewportW - popupWidth - popupMargin
	if x < 0 {
		x = 0
	}
	y := (viewportH - popupHeight) / 2
	if y < 0 {
		y = 0
	}
	return &PopupSession{
		ID:       uuid.NewString(),
		City:     city,
		Country:  country,
		Images:   append([]string(nil), images...),
		Bounds:   Rect{X: x, Y: y, W: popupWidth, H: popupHeight},
		Phase:    PopupOpening,
		OpenedAt: now,
	}
}

// CloseButton is the close control's rectangle, anchored to the popup's bottom edge.
func (p *PopupSession) CloseButton() Rect {
	return Rect{
		X: p.Bounds.X + (p.Bounds.W-closeBtnW)/2,
		Y: p.Bounds.Y + p.Bounds.H - closeBtnH - closeBtnInset,
		W: closeBtnW,
		H: closeBtnH,
	}
}

func (p *PopupSession) Contains(x, y float64) bool { return p.Bounds.Contains(x, y) }

// Dragging reports whether a pointer drag that started on the popup is in progress.
func (p *PopupSession) Dragging() bool { return p.dragging }

// DragOffset is the pointer position relative to the popup's corner when the drag began.
func (p *PopupSession) DragOffset() (x, y float64) { return p.dragOffsetX, p.dragOffsetY }

func (p *PopupSession) beginDrag(x, y float64) {
	p.dragging = true
	p.dragOffsetX = x - p.Bounds.X
	p.dragOffsetY = y - p.Bounds.Y
}

func (p *PopupSession) dragTo(x, y float64) {
	if !p.dragging {
		return
	}
	p.Bounds.X = x - p.dragOffsetX
	p.Bounds.Y = y - p.dragOffsetY
}

func (p *PopupSession) endDrag() { p.dragging = false }
