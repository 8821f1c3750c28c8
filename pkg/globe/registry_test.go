package globe

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudorandom/city-globe/pkg/geo"
	"github.com/sudorandom/city-globe/pkg/scene"
)

func TestRegistry_CreateMarker(t *testing.T) {
	body := scene.NewSphere("globe", 5, ColorOcean)
	ov := newFakeOverlay()
	r := NewRegistry(body, ov, 0.05)

	m, err := r.CreateMarker("New York", 40.7128, -74.0060, 5, ColorMarker)
	require.NoError(t, err)

	assert.Equal(t, "New York", m.Name)
	assert.Same(t, body, m.Object.Parent())
	assert.InDelta(t, 0.05, m.Object.Radius, 1e-12)
	assertVecInDelta(t, geo.ToCartesian(40.7128, -74.0060, 5), m.Object.Position, 1e-12)
	require.Contains(t, ov.labels, "New York")
	assert.Same(t, ov.labels["New York"], m.Label)
	assert.Equal(t, Normal, m.State())
}

func TestRegistry_DuplicateCity(t *testing.T) {
	r := NewRegistry(scene.NewNode("globe"), nil, 0.05)

	_, err := r.CreateMarker("Osaka", 34.6937, 135.5023, 5, ColorMarker)
	require.NoError(t, err)

	_, err = r.CreateMarker("Osaka", 0, 0, 5, ColorMarker)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateCity))
	assert.Contains(t, err.Error(), "Osaka")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_AllKeepsInsertionOrder(t *testing.T) {
	r := NewRegistry(scene.NewNode("globe"), nil, 0.05)
	names := []string{"Seoul", "Bali", "Miami", "Toronto"}
	for _, n := range names {
		_, err := r.CreateMarker(n, 0, 0, 5, ColorMarker)
		require.NoError(t, err)
	}

	var got []string
	for _, m := range r.All() {
		got = append(got, m.Name)
	}
	assert.Equal(t, names, got)
}

func TestRegistry_FindByRenderObject(t *testing.T) {
	r := NewRegistry(scene.NewNode("globe"), nil, 0.05)
	m, err := r.CreateMarker("Seoul", 37.5665, 126.9780, 5, ColorMarker)
	require.NoError(t, err)

	got, ok := r.FindByRenderObject(m.Object)
	require.True(t, ok)
	assert.Same(t, m, got)

	_, ok = r.FindByRenderObject(scene.NewSphere("stranger", 1, ColorMarker))
	assert.False(t, ok)
	_, ok = r.FindByRenderObject(nil)
	assert.False(t, ok)
}

func TestMarker_WorldAnchorFollowsGlobeRotation(t *testing.T) {
	body := scene.NewSphere("globe", 5, ColorOcean)
	r := NewRegistry(body, nil, 0.05)
	m, err := r.CreateMarker("Equator", 0, 0, 5, ColorMarker)
	require.NoError(t, err)

	assertVecInDelta(t, mgl64.Vec3{5, 0, 0}, m.WorldAnchor(), 1e-12)

	body.RotationY = 0.25
	got := m.WorldAnchor()
	assert.InDelta(t, 5, got.Len(), 1e-9)
	assert.Greater(t, got.Sub(mgl64.Vec3{5, 0, 0}).Len(), 0.1)
	// The local anchor is still derived from the coordinate.
	assertVecInDelta(t, mgl64.Vec3{5, 0, 0}, m.Object.Position, 1e-12)
}
