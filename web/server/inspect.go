package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Color        string                 `json:"color"` // Shaded pixel color as #rrggbb
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *geometry.HitRecord
	Shape     geometry.Shape // The top-level shape that was hit
	Color     core.Vec3
}

// inspectPixel casts the primary ray of pixel (x, y), counted from the top-left corner,
// exactly as the render loop does and reports the closest hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	u := float64(pixelX) / float64(sceneObj.Width)
	v := float64(sceneObj.Height-1-pixelY) / float64(sceneObj.Height)
	ray := sceneObj.Camera.GetRay(u, v)

	raytracer := renderer.NewRaytracer(sceneObj, sceneObj.Width, sceneObj.Height)
	color, isHit := raytracer.RayColor(ray)
	if !isHit {
		return InspectResult{Hit: false, Color: color}
	}

	// The world only reports the record, so find the shape that produced it
	var closest *geometry.HitRecord
	var closestShape geometry.Shape
	closestSoFar := math.Inf(1)
	for _, shape := range sceneObj.World.Shapes() {
		if hit, ok := shape.Hit(ray, 0, closestSoFar); ok {
			closestSoFar = hit.T
			closest = hit
			closestShape = shape
		}
	}

	return InspectResult{
		Hit:       true,
		HitRecord: closest,
		Shape:     closestShape,
		Color:     color,
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.HittableList:
		properties["count"] = geom.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

// hexColor formats a color the way pixels are quantized
func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", uint8(255.999*c.X), uint8(255.999*c.Y), uint8(255.999*c.Z))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	params, err := parseCommonSceneParams(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := createScene(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Parse and validate pixel coordinates
	pixelX, err := parseIntParam(values, "x", -1, 0, sceneObj.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(values, "y", -1, 0, sceneObj.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Color: hexColor(result.Color)})
		return
	}

	geometryType, geometryProps := extractGeometryInfo(result.Shape)
	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Color:        hexColor(result.Color),
		Properties:   geometryProps,
	})
}
