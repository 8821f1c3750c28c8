// Package scene is a small scene graph: transform nodes carrying optional sphere
// geometry, a perspective camera and a ray caster over those spheres.
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is a transform in the scene tree. A node with a positive Radius is a sphere
// primitive and takes part in ray casting.
type Node struct {
	Name      string
	Position  mgl64.Vec3
	RotationY float64
	Scale     float64

	Radius  float64
	Color   color.RGBA
	Visible bool

	parent   *Node
	children []*Node
}

// NewNode returns an empty, visible transform node.
func NewNode(name string) *Node {
	return &Node{Name: name, Scale: 1, Visible: true}
}

// NewSphere returns a visible sphere primitive.
func NewSphere(name string, radius float64, c color.RGBA) *Node {
	n := NewNode(name)
	n.Radius = radius
	n.Color = c
	return n
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child if it belongs to n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the child slice. Callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// LocalMatrix is translate * rotateY * scale.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	s := n.Scale
	if s == 0 {
		s = 1
	}
	return mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(mgl64.HomogRotate3DY(n.RotationY)).
		Mul4(mgl64.Scale3D(s, s, s))
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// LocalToWorld maps a point in n's local space into world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldMatrix())
}

// WorldPosition is the origin of n in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	if n.parent == nil {
		return n.Position
	}
	return n.parent.LocalToWorld(n.Position)
}

// WorldRadius is Radius scaled by n and every ancestor. Scales are uniform.
func (n *Node) WorldRadius() float64 {
	r := n.Radius
	for p := n; p != nil; p = p.parent {
		if p.Scale != 0 {
			r *= p.Scale
		}
	}
	return r
}
