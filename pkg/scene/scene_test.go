package scene

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/renderer"
)

func TestNewScene_Defaults(t *testing.T) {
	s := NewScene(400, 200)

	if s.CameraConfig.AspectRatio != 2.0 {
		t.Errorf("Expected aspect ratio 2, got %f", s.CameraConfig.AspectRatio)
	}
	if s.Camera.Horizontal != core.NewVec3(4, 0, 0) {
		t.Errorf("Expected horizontal (4,0,0), got %v", s.Camera.Horizontal)
	}
	top, bottom := s.GetBackgroundColors()
	if top != renderer.DefaultTopColor || bottom != renderer.DefaultBottomColor {
		t.Errorf("Unexpected background colors %v %v", top, bottom)
	}
	if s.GetPrimitiveCount() != 0 {
		t.Errorf("Expected empty world, got %d shapes", s.GetPrimitiveCount())
	}
}

func TestScene_NilWorld(t *testing.T) {
	s := NewScene(4, 4)
	s.World = nil

	if s.GetWorld() != nil {
		t.Error("Expected nil world interface for a nil list")
	}
	// Rendering a scene without a world shows only the background
	frame := renderer.NewRaytracer(s, 4, 4).Render()
	if frame.Stats.HitPixels != 0 {
		t.Errorf("Expected no hits, got %+v", frame.Stats)
	}
}

func TestAspectRatio(t *testing.T) {
	if r := AspectRatio(300, 150); r != 2 {
		t.Errorf("Expected 2, got %f", r)
	}
	if r := AspectRatio(0, 10); math.Abs(r-16.0/9.0) > 1e-12 {
		t.Errorf("Expected 16:9 fallback, got %f", r)
	}
}

func TestOverlapScene_OrderIndependent(t *testing.T) {
	const width, height = 48, 36
	forward := NewOverlapScene(width, height)

	reversed := NewScene(width, height)
	shapes := forward.World.Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		reversed.Add(shapes[i])
	}

	a := renderer.NewRaytracer(forward, width, height).Render()
	b := renderer.NewRaytracer(reversed, width, height).Render()
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected identical frames regardless of insertion order")
	}
	if a.Stats.HitPixels == 0 {
		t.Error("Expected the overlapping spheres to cover some pixels")
	}
}

func TestGroundScene_CoversLowerHalf(t *testing.T) {
	const width, height = 40, 20
	frame := renderer.NewRaytracer(NewGroundScene(width, height), width, height).Render()

	// Bottom row looks down at the ground sphere, top row looks at the sky
	for i := 0; i < width; i++ {
		bottom := frame.Pix[4*((height-1)*width+i):]
		top := frame.Pix[4*i:]
		// Ground normals point up, so green (normal.y) dominates the bottom row
		if bottom[1] < 200 {
			t.Fatalf("Expected ground shading in bottom row at column %d, got %v", i, bottom[:4])
		}
		if top[2] != 255 {
			t.Fatalf("Expected sky in top row at column %d, got %v", i, top[:4])
		}
	}
}

func TestNewFromDescription(t *testing.T) {
	desc, err := loaders.ParseSceneJSON(strings.NewReader(`{
		"camera": {"origin": [0, 0, 2], "viewportHeight": 4, "focalLength": 2},
		"background": {"top": "#000", "bottom": "#ff0000"},
		"spheres": [{"center": [0, 0, -1], "radius": 0.5}]
	}`))
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}

	s, err := NewFromDescription(desc, 100, 50)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.CameraConfig.AspectRatio != 2 || s.CameraConfig.ViewportHeight != 4 || s.CameraConfig.FocalLength != 2 {
		t.Errorf("Unexpected camera config %+v", s.CameraConfig)
	}
	expectedLowerLeft := core.NewVec3(-4, -2, 0)
	if s.Camera.LowerLeftCorner != expectedLowerLeft {
		t.Errorf("Expected lower left %v, got %v", expectedLowerLeft, s.Camera.LowerLeftCorner)
	}
	if s.TopColor != core.NewVec3(0, 0, 0) || s.BottomColor != core.NewVec3(1, 0, 0) {
		t.Errorf("Unexpected background %v %v", s.TopColor, s.BottomColor)
	}

	sphere, ok := s.World.Shapes()[0].(*geometry.Sphere)
	if !ok || sphere.Center != core.NewVec3(0, 0, -1) || sphere.Radius != 0.5 {
		t.Errorf("Unexpected sphere %+v", s.World.Shapes()[0])
	}
}
