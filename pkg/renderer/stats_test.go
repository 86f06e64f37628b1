package renderer

import "testing"

func TestRenderStats_Record(t *testing.T) {
	var stats RenderStats
	for _, hit := range []bool{true, false, false, true} {
		stats.record(hit)
	}

	if stats.TotalPixels != 4 || stats.HitPixels != 2 || stats.BackgroundPixels != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.Coverage() != 0.5 {
		t.Errorf("Expected coverage 0.5, got %f", stats.Coverage())
	}
}

func TestRenderStats_CoverageEmpty(t *testing.T) {
	if c := (RenderStats{}).Coverage(); c != 0 {
		t.Errorf("Expected zero coverage for empty stats, got %f", c)
	}
}
