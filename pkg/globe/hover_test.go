package globe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHover_HighlightsMarkerUnderPointer(t *testing.T) {
	c, ov := newTestController(t)
	ny, _ := c.Registry().Get("New York")

	c.PointerMove(screenOf(c, ny))

	require.Same(t, ny, c.Hover().Hovered())
	assert.Equal(t, Hovered, ny.State())
	v := ny.Visuals()
	assert.InDelta(t, 1.2, v.Scale, 1e-12)
	assert.Equal(t, ColorHighlight, v.Color)
	assert.True(t, v.Bold)
	assert.True(t, ov.labels["New York"].bold)

	base, ok := ny.BaseVisuals()
	require.True(t, ok)
	assert.Equal(t, Visuals{Scale: 1, Color: ColorMarker}, base)
}

func TestHover_Idempotent(t *testing.T) {
	c, _ := newTestController(t)
	ny, _ := c.Registry().Get("New York")
	ray := c.pointerRay(screenOf(c, ny))

	c.Hover().Update(ray)
	before := ny.Visuals()
	baseBefore, _ := ny.BaseVisuals()

	c.Hover().Update(ray)
	c.Hover().Update(ray)

	assert.Same(t, ny, c.Hover().Hovered())
	assert.Equal(t, before, ny.Visuals())
	baseAfter, _ := ny.BaseVisuals()
	assert.Equal(t, baseBefore, baseAfter)
	assert.Len(t, highlighted(c.Registry()), 1)
}

func TestHover_MoveFromAToB(t *testing.T) {
	c, ov := newTestController(t)
	a, _ := c.Registry().Get("New York")
	b, _ := c.Registry().Get("Miami")

	c.PointerMove(screenOf(c, a))
	require.Same(t, a, c.Hover().Hovered())

	c.PointerMove(screenOf(c, b))

	assert.Same(t, b, c.Hover().Hovered())
	baseA, _ := a.BaseVisuals()
	assert.Equal(t, baseA, a.Visuals())
	assert.Equal(t, Normal, a.State())
	assert.False(t, ov.labels["New York"].bold)

	assert.Equal(t, Hovered, b.State())
	assert.InDelta(t, 1.2, b.Visuals().Scale, 1e-12)
	assert.Equal(t, ColorHighlight, b.Visuals().Color)
	assert.True(t, ov.labels["Miami"].bold)
}

func TestHover_LeavingMarkersClearsHighlight(t *testing.T) {
	c, _ := newTestController(t)
	ny, _ := c.Registry().Get("New York")

	c.PointerMove(screenOf(c, ny))
	c.PointerMove(2, 2) // Empty space in the corner.

	assert.Nil(t, c.Hover().Hovered())
	assert.Empty(t, highlighted(c.Registry()))

	c.PointerMove(screenOf(c, ny))
	c.PointerLeave()
	assert.Nil(t, c.Hover().Hovered())
}

func TestHover_RepeatedCyclesDoNotDrift(t *testing.T) {
	c, _ := newTestController(t)
	a, _ := c.Registry().Get("New York")
	b, _ := c.Registry().Get("Miami")

	for i := 0; i < 20; i++ {
		c.Hover().Set(a)
		c.Hover().Set(b)
	}
	c.Hover().Clear()

	want := Visuals{Scale: 1, Color: ColorMarker}
	assert.Equal(t, want, a.Visuals())
	assert.Equal(t, want, b.Visuals())
}

func TestHover_AtMostOneHighlighted(t *testing.T) {
	c, _ := newTestController(t)
	rng := rand.New(rand.NewSource(7))
	markers := c.Registry().All()

	for i := 0; i < 300; i++ {
		switch rng.Intn(3) {
		case 0:
			c.Hover().Set(markers[rng.Intn(len(markers))])
		case 1:
			m := markers[rng.Intn(len(markers))]
			c.PointerMove(screenOf(c, m))
		default:
			c.PointerMove(rng.Float64()*1600, rng.Float64()*900)
		}
		require.LessOrEqual(t, len(highlighted(c.Registry())), 1, "step %d", i)
	}
}
