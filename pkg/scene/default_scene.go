package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// NewDefaultScene creates a single sphere floating in front of the camera
func NewDefaultScene(width, height int) *Scene {
	s := NewScene(width, height)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5))
	return s
}

// NewGroundScene adds a very large sphere under the default sphere to act as ground
func NewGroundScene(width, height int) *Scene {
	s := NewDefaultScene(width, height)
	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100))
	return s
}

// NewOverlapScene places two intersecting spheres on the view axis, the farther one added first
func NewOverlapScene(width, height int) *Scene {
	s := NewScene(width, height)
	s.Add(
		geometry.NewSphere(core.NewVec3(0.3, 0, -2.2), 0.6),
		geometry.NewSphere(core.NewVec3(-0.2, 0, -1.5), 0.4),
	)
	return s
}

// NewEmptyScene has no geometry, only the background gradient
func NewEmptyScene(width, height int) *Scene {
	return NewScene(width, height)
}
