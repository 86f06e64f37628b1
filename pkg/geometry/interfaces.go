package geometry

import "github.com/df07/go-raytracer/pkg/core"

// Shape interface for objects that can be hit by rays.
// Hit reports the closest intersection with t in [tMin, tMax], or false when there is none.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
}
