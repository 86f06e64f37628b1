package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raytracer/pkg/loaders"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier, accepted by Create
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "json"
	FilePath    string `json:"filePath,omitempty"` // Path to the JSON file (json type only)
}

// SceneDirs are searched, in order, for JSON scene files
var SceneDirs = []string{"scenes", "../scenes"}

type builtinScene struct {
	info  SceneInfo
	build func(width, height int) *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Single sphere in front of the camera", Type: "builtin"}, NewDefaultScene},
	{SceneInfo{ID: "ground", DisplayName: "Ground", Description: "Sphere resting on a large ground sphere", Type: "builtin"}, NewGroundScene},
	{SceneInfo{ID: "overlap", DisplayName: "Overlapping Spheres", Description: "Two intersecting spheres on the view axis", Type: "builtin"}, NewOverlapScene},
	{SceneInfo{ID: "empty", DisplayName: "Empty", Description: "Background gradient only", Type: "builtin"}, NewEmptyScene},
}

// ListBuiltinScenes returns the built-in scenes in display order
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		infos[i] = b.info
	}
	return infos
}

// ListJSONScenes scans a directory for *.json scene files.
// Files that fail to parse are skipped.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		desc, err := loaders.LoadSceneJSON(filePath)
		if err != nil {
			continue
		}

		id := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		displayName := desc.Name
		if displayName == "" {
			displayName = titleCase(id)
		}
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: displayName,
			Description: desc.Description,
			Type:        "json",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListScenes returns the built-in scenes followed by the JSON scenes of the first existing scene directory
func ListScenes() ([]SceneInfo, error) {
	scenes := ListBuiltinScenes()

	dir := findScenesDir()
	if dir == "" {
		return scenes, nil
	}
	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return scenes, err
	}
	return append(scenes, jsonScenes...), nil
}

// Create builds a scene by built-in id, JSON scene id, or path to a .json file.
// A zero width or height selects the scene's preferred size.
func Create(name string, width, height int) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name is required")
	}

	for _, b := range builtinScenes {
		if b.info.ID == name {
			if width <= 0 || height <= 0 {
				width, height = DefaultWidth, DefaultHeight
			}
			return b.build(width, height), nil
		}
	}

	if strings.HasSuffix(name, ".json") {
		return NewJSONScene(name, width, height)
	}

	if dir := findScenesDir(); dir != "" {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return NewJSONScene(path, width, height)
		}
	}

	return nil, fmt.Errorf("unknown scene: %s", name)
}

func findScenesDir() string {
	for _, dir := range SceneDirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
