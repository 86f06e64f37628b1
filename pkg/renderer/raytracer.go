package renderer

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// Background and flat shading defaults
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0) // sky blue
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0) // white
	DefaultFlatColor   = core.NewVec3(1.0, 0.0, 0.0)
)

// Shading selects how a primary ray hit is turned into a color
type Shading int

const (
	ShadeNormals Shading = iota // map the surface normal from [-1,1] to [0,1]
	ShadeFlat                   // one solid color for every hit
)

// String returns the flag name of the shading mode
func (s Shading) String() string {
	switch s {
	case ShadeNormals:
		return "normals"
	case ShadeFlat:
		return "flat"
	default:
		return fmt.Sprintf("Shading(%d)", int(s))
	}
}

// ParseShading parses a shading mode name
func ParseShading(name string) (Shading, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normals", "normal":
		return ShadeNormals, nil
	case "flat":
		return ShadeFlat, nil
	default:
		return ShadeNormals, fmt.Errorf("unknown shading mode %q (want normals or flat)", name)
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene     Scene
	width     int
	height    int
	shading   Shading
	flatColor core.Vec3
	logger    core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:     scene,
		width:     width,
		height:    height,
		shading:   ShadeNormals,
		flatColor: DefaultFlatColor,
		logger:    core.NopLogger{},
	}
}

// SetShading updates the shading mode
func (rt *Raytracer) SetShading(shading Shading) {
	rt.shading = shading
}

// SetFlatColor sets the color used by ShadeFlat
func (rt *Raytracer) SetFlatColor(color core.Vec3) {
	rt.flatColor = color
}

// SetLogger sets the logger used for render progress
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// hitWorld checks if a ray hits any object in the scene
func (rt *Raytracer) hitWorld(ray core.Ray) (*geometry.HitRecord, bool) {
	world := rt.scene.GetWorld()
	if world == nil {
		return nil, false
	}
	return world.Hit(ray, 0, math.Inf(1))
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// (1-t)*bottom + t*top
	return bottomColor.Lerp(topColor, t)
}

// RayColor returns the color seen along a ray, and whether it hit the scene
func (rt *Raytracer) RayColor(r core.Ray) (core.Vec3, bool) {
	hit, isHit := rt.hitWorld(r)
	if !isHit {
		return rt.backgroundGradient(r), false
	}

	if rt.shading == ShadeFlat {
		return rt.flatColor, true
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5), true
}

// appendColor writes one opaque RGBA pixel, clamping the color to [0,1] first
func appendColor(pix []uint8, colorVec core.Vec3) []uint8 {
	colorVec = colorVec.Clamp(0.0, 1.0)
	return append(pix,
		uint8(255.999*colorVec.X),
		uint8(255.999*colorVec.Y),
		uint8(255.999*colorVec.Z),
		255,
	)
}

// Frame is a finished render: 4 bytes (R, G, B, A) per pixel in row-major order
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
	Stats  RenderStats
}

// Image wraps the pixel buffer as an *image.RGBA without copying
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: 4 * f.Width,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// Render traces one primary ray per pixel and returns the frame.
// Rows are emitted top to bottom, which walks the viewport from v=1 down to v=0.
func (rt *Raytracer) Render() *Frame {
	frame := &Frame{
		Width:  rt.width,
		Height: rt.height,
		Pix:    make([]uint8, 0, 4*rt.width*rt.height),
	}
	camera := rt.scene.GetCamera()

	for j := rt.height - 1; j >= 0; j-- {
		for i := 0; i < rt.width; i++ {
			u := float64(i) / float64(rt.width)
			v := float64(j) / float64(rt.height)

			colorVec, hit := rt.RayColor(camera.GetRay(u, v))
			frame.Stats.record(hit)
			frame.Pix = appendColor(frame.Pix, colorVec)
		}
	}

	rt.logger.Printf("Rendered %dx%d frame: %d hit, %d background pixels\n",
		rt.width, rt.height, frame.Stats.HitPixels, frame.Stats.BackgroundPixels)

	return frame
}
