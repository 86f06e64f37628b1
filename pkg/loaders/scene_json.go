package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/fogleman/fauxgl"
)

// SceneDescription is the JSON form of a scene file
type SceneDescription struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Width       int                   `json:"width,omitempty"`  // Preferred image width
	Height      int                   `json:"height,omitempty"` // Preferred image height
	Camera      CameraDescription     `json:"camera"`
	Background  BackgroundDescription `json:"background"`
	Spheres     []SphereDescription   `json:"spheres"`
}

// CameraDescription holds the viewport parameters. Zero values mean "use the default".
type CameraDescription struct {
	Origin         *[3]float64 `json:"origin,omitempty"`
	AspectRatio    float64     `json:"aspectRatio,omitempty"`
	ViewportHeight float64     `json:"viewportHeight,omitempty"`
	FocalLength    float64     `json:"focalLength,omitempty"`
}

// BackgroundDescription holds the gradient colors as hex strings ("#80b3ff", "fff")
type BackgroundDescription struct {
	Top    string `json:"top,omitempty"`
	Bottom string `json:"bottom,omitempty"`
}

// SphereDescription describes one sphere
type SphereDescription struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseHexColor converts "#rgb" or "#rrggbb" into a color with components in [0,1]
func ParseHexColor(hex string) (core.Vec3, error) {
	if !hexColorPattern.MatchString(hex) {
		return core.Vec3{}, fmt.Errorf("invalid hex color %q", hex)
	}
	c := fauxgl.HexColor(hex)
	return core.NewVec3(c.R, c.G, c.B), nil
}

// Vec3 converts a JSON triple to a vector
func Vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Colors resolves the gradient colors, falling back to the given defaults for empty fields
func (b BackgroundDescription) Colors(defaultTop, defaultBottom core.Vec3) (top, bottom core.Vec3, err error) {
	top, bottom = defaultTop, defaultBottom
	if b.Top != "" {
		if top, err = ParseHexColor(b.Top); err != nil {
			return top, bottom, fmt.Errorf("background top: %w", err)
		}
	}
	if b.Bottom != "" {
		if bottom, err = ParseHexColor(b.Bottom); err != nil {
			return top, bottom, fmt.Errorf("background bottom: %w", err)
		}
	}
	return top, bottom, nil
}

// Validate checks the description for values a scene cannot be built from
func (d *SceneDescription) Validate() error {
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", d.Width, d.Height)
	}
	if (d.Width == 0) != (d.Height == 0) {
		return fmt.Errorf("width and height must be given together, got %dx%d", d.Width, d.Height)
	}
	if d.Camera.AspectRatio < 0 || d.Camera.ViewportHeight < 0 || d.Camera.FocalLength < 0 {
		return fmt.Errorf("camera parameters must not be negative")
	}
	for i, s := range d.Spheres {
		if s.Radius <= 0 {
			return fmt.Errorf("sphere %d: radius must be positive, got %g", i, s.Radius)
		}
	}
	if _, _, err := d.Background.Colors(core.Vec3{}, core.Vec3{}); err != nil {
		return err
	}
	return nil
}

// ParseSceneJSON parses and validates a scene description
func ParseSceneJSON(reader io.Reader) (*SceneDescription, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var desc SceneDescription
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %q: %w", desc.Name, err)
	}
	return &desc, nil
}

// LoadSceneJSON loads a scene description from a file
func LoadSceneJSON(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseSceneJSON(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}
