package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func vecNear(a, b core.Vec3) bool {
	return a.Subtract(b).Length() <= 1e-9
}

func TestSphere_Hit_FromOutside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.Hit(ray, 0, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.T != 2.0 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	if hit.Point != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected point (0,0,-1), got %v", hit.Point)
	}
	if hit.Normal != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected normal (0,0,-1), got %v", hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
	}{
		{"pointing away", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, -1)},
		{"passing beside", core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.direction), 0, math.Inf(1))
			if isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
			if hit != nil {
				t.Errorf("Expected nil record on miss, got %+v", hit)
			}
		})
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "non-unit direction",
			rayOrigin:      core.NewVec3(0, 0, 5),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      2.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !vecNear(hit.Normal, tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			// Normal always opposes the incoming ray
			if hit.Normal.Dot(ray.Direction) >= 0 {
				t.Errorf("Expected normal %v to face against ray direction %v", hit.Normal, ray.Direction)
			}
		})
	}
}

func TestSphere_Hit_DirectHitDistance(t *testing.T) {
	tests := []struct {
		center core.Vec3
		radius float64
		dir    core.Vec3
		dist   float64
	}{
		{core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 0, 1), 3},
		{core.NewVec3(1, 2, 3), 0.5, core.NewVec3(1, 0, 0), 4},
		{core.NewVec3(-2, 0, -1), 2, core.NewVec3(0, 1, 1).Normalize(), 10},
	}

	for _, tt := range tests {
		sphere := NewSphere(tt.center, tt.radius)
		origin := tt.center.Subtract(tt.dir.Multiply(tt.dist))
		hit, isHit := sphere.Hit(core.NewRay(origin, tt.dir), 0, math.Inf(1))
		if !isHit {
			t.Fatalf("Expected hit for sphere %v r=%f", tt.center, tt.radius)
		}
		if math.Abs(hit.T-(tt.dist-tt.radius)) > 1e-9 {
			t.Errorf("Expected t=%f, got %f", tt.dist-tt.radius, hit.T)
		}
		if d := hit.Point.Subtract(tt.center).Length(); math.Abs(d-tt.radius) > 1e-9 {
			t.Errorf("Expected hit point at distance %f from center, got %f", tt.radius, d)
		}
		if !hit.FrontFace {
			t.Error("Expected front face hit")
		}
		if l := hit.Normal.Length(); math.Abs(l-1) > 1e-9 {
			t.Errorf("Expected unit normal, got length %f", l)
		}
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}
	if !vecNear(hit.Point, core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected hit point (1,0,0), got %v", hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Both roots (t=1 and t=3) beyond tMax
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Both roots before tMin
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FarRootFallback(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Near root t=1 excluded, far root t=3 is inside the range
	hit, isHit := sphere.Hit(ray, 2, 1000.0)
	if !isHit {
		t.Fatal("Expected far root hit, but got miss")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Expected back face for the exit point")
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected flipped normal (0,0,1), got %v", hit.Normal)
	}

	// Far root beyond a tight tMax is also rejected
	if hit, isHit := sphere.Hit(ray, 2, 2.5); isHit {
		t.Errorf("Expected miss when both roots are outside [2, 2.5], got t=%f", hit.T)
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	var rec HitRecord
	rec.SetFaceNormal(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), outward)
	if !rec.FrontFace || rec.Normal != outward {
		t.Errorf("Expected front face with outward normal, got front=%t normal=%v", rec.FrontFace, rec.Normal)
	}

	rec.SetFaceNormal(core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0)), outward)
	if rec.FrontFace || rec.Normal != outward.Negate() {
		t.Errorf("Expected back face with inverted normal, got front=%t normal=%v", rec.FrontFace, rec.Normal)
	}

	// Perpendicular rays count as back face
	rec.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), outward)
	if rec.FrontFace {
		t.Error("Expected perpendicular ray to be classified as back face")
	}
}
