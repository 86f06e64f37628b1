package renderer

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Camera generates rays for rendering.
// The four vectors are treated as an opaque, immutable configuration by the render loop.
type Camera struct {
	Origin          core.Vec3
	Horizontal      core.Vec3
	Vertical        core.Vec3
	LowerLeftCorner core.Vec3
}

// CameraConfig describes a pinhole viewport looking down -Z
type CameraConfig struct {
	Origin         core.Vec3
	AspectRatio    float64 // viewport width / height
	ViewportHeight float64
	FocalLength    float64 // distance from origin to the viewport plane
}

// DefaultCameraConfig returns a viewport two units tall, one unit in front of the origin
func DefaultCameraConfig(aspectRatio float64) CameraConfig {
	return CameraConfig{
		Origin:         core.NewVec3(0, 0, 0),
		AspectRatio:    aspectRatio,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	}
}

// NewCamera derives the viewport vectors from a camera configuration
func NewCamera(config CameraConfig) *Camera {
	viewportWidth := config.AspectRatio * config.ViewportHeight

	origin := config.Origin
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, config.ViewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(core.NewVec3(0, 0, config.FocalLength))

	return &Camera{
		Origin:          origin,
		Horizontal:      horizontal,
		Vertical:        vertical,
		LowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for viewport coordinates (u, v) where 0 <= u,v <= 1,
// (0, 0) being the lower left corner
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.LowerLeftCorner.
		Add(c.Horizontal.Multiply(u)).
		Add(c.Vertical.Multiply(v)).
		Subtract(c.Origin)

	return core.NewRay(c.Origin, direction)
}
