package globe

// Label is a floating on-screen text element owned by a marker.
type Label interface {
	Show(x, y float64)
	Hide()
	SetBold(bold bool)
}

// Overlay creates and removes the floating elements drawn over the globe.
type Overlay interface {
	NewLabel(text string) Label
	OpenPopup(p *PopupSession)
	RemovePopup(p *PopupSession)
}

type nopOverlay struct{}

func (nopOverlay) NewLabel(string) Label     { return nil }
func (nopOverlay) OpenPopup(*PopupSession)   {}
func (nopOverlay) RemovePopup(*PopupSession) {}
