package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Default image size for built-in scenes (16:9)
const (
	DefaultWidth  = 400
	DefaultHeight = 225
)

// Scene contains all the elements needed for rendering.
// It is built once before rendering and only read while a frame is traced.
type Scene struct {
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	World        *geometry.HittableList // Objects in the scene
	TopColor     core.Vec3              // Background color straight up
	BottomColor  core.Vec3              // Background color straight down
	Width        int                    // Image width
	Height       int                    // Image height
}

// NewScene creates an empty scene with the default camera for the given image size
func NewScene(width, height int) *Scene {
	config := renderer.DefaultCameraConfig(AspectRatio(width, height))
	return &Scene{
		Camera:       renderer.NewCamera(config),
		CameraConfig: config,
		World:        geometry.NewHittableList(),
		TopColor:     renderer.DefaultTopColor,
		BottomColor:  renderer.DefaultBottomColor,
		Width:        width,
		Height:       height,
	}
}

// AspectRatio returns width/height, or 16:9 when the size is degenerate
func AspectRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 16.0 / 9.0
	}
	return float64(width) / float64(height)
}

// Add appends shapes to the world
func (s *Scene) Add(shapes ...geometry.Shape) {
	for _, shape := range shapes {
		s.World.Add(shape)
	}
}

// GetPrimitiveCount returns the number of top-level shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	if s.World == nil {
		return nil
	}
	return s.World
}

// GetBackgroundColors implements renderer.Scene
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}
