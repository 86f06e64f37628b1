package renderer

// RenderStats contains statistics about a rendered frame
type RenderStats struct {
	TotalPixels      int `json:"totalPixels"`      // Total number of pixels rendered
	HitPixels        int `json:"hitPixels"`        // Pixels whose primary ray hit the scene
	BackgroundPixels int `json:"backgroundPixels"` // Pixels shaded by the background gradient
}

// Coverage returns the fraction of pixels that hit geometry
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

func (s *RenderStats) record(hit bool) {
	s.TotalPixels++
	if hit {
		s.HitPixels++
	} else {
		s.BackgroundPixels++
	}
}
