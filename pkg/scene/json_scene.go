package scene

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewJSONScene creates a scene from a JSON scene file.
// A zero width or height falls back to the size in the file, then to the default size.
func NewJSONScene(filepath string, width, height int) (*Scene, error) {
	desc, err := loaders.LoadSceneJSON(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}
	return NewFromDescription(desc, width, height)
}

// NewFromDescription builds a scene from a parsed description
func NewFromDescription(desc *loaders.SceneDescription, width, height int) (*Scene, error) {
	if width <= 0 || height <= 0 {
		width, height = desc.Width, desc.Height
	}
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	s := NewScene(width, height)
	s.CameraConfig = convertCamera(desc.Camera, s.CameraConfig)
	s.Camera = renderer.NewCamera(s.CameraConfig)

	top, bottom, err := desc.Background.Colors(s.TopColor, s.BottomColor)
	if err != nil {
		return nil, fmt.Errorf("failed to convert background: %w", err)
	}
	s.TopColor, s.BottomColor = top, bottom

	for _, sphere := range desc.Spheres {
		s.Add(geometry.NewSphere(loaders.Vec3(sphere.Center), sphere.Radius))
	}

	return s, nil
}

// convertCamera overlays the non-zero description fields on the default config
func convertCamera(desc loaders.CameraDescription, config renderer.CameraConfig) renderer.CameraConfig {
	if desc.Origin != nil {
		config.Origin = loaders.Vec3(*desc.Origin)
	}
	if desc.AspectRatio > 0 {
		config.AspectRatio = desc.AspectRatio
	}
	if desc.ViewportHeight > 0 {
		config.ViewportHeight = desc.ViewportHeight
	}
	if desc.FocalLength > 0 {
		config.FocalLength = desc.FocalLength
	}
	return config
}
