package renderer

import (
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestNewCamera_DefaultViewport(t *testing.T) {
	camera := NewCamera(DefaultCameraConfig(16.0 / 9.0))

	width := 16.0 / 9.0 * 2.0
	if camera.Origin != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected origin at zero, got %v", camera.Origin)
	}
	if camera.Horizontal != core.NewVec3(width, 0, 0) {
		t.Errorf("Expected horizontal (%f,0,0), got %v", width, camera.Horizontal)
	}
	if camera.Vertical != core.NewVec3(0, 2, 0) {
		t.Errorf("Expected vertical (0,2,0), got %v", camera.Vertical)
	}
	expectedLowerLeft := core.NewVec3(-width/2, -1, -1)
	if camera.LowerLeftCorner.Subtract(expectedLowerLeft).Length() > 1e-12 {
		t.Errorf("Expected lower left %v, got %v", expectedLowerLeft, camera.LowerLeftCorner)
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Origin:         core.NewVec3(1, 2, 3),
		AspectRatio:    2.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	})

	tests := []struct {
		name      string
		u, v      float64
		direction core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v)
			if ray.Origin != camera.Origin {
				t.Errorf("Expected ray origin %v, got %v", camera.Origin, ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}
