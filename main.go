package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// stdoutLogger prints library log lines to the console
type stdoutLogger struct{}

func (stdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags
	sceneType := flag.String("scene", cfg.Scene, "Scene name (built-in id, JSON scene id, or path to a .json file)")
	width := flag.Int("width", cfg.Width, "Image width in pixels")
	height := flag.Int("height", cfg.Height, "Image height in pixels")
	outputRoot := flag.String("output", cfg.OutputDir, "Output directory")
	scale := flag.Int("scale", cfg.Scale, "Integer upscale factor applied before saving")
	shadingName := flag.String("shading", "normals", "Shading mode: 'normals' or 'flat'")
	upload := flag.Bool("upload", false, "Publish the render to S3 (requires RT_S3_BUCKET)")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if *list {
		if err := listScenes(); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	shading, err := renderer.ParseShading(*shadingName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *scale < 1 {
		fmt.Printf("Error: scale must be at least 1, got %d\n", *scale)
		os.Exit(1)
	}

	fmt.Println("Starting Raytracer...")

	selectedScene, err := createScene(*sceneType, *width, *height)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using %s scene (%d objects, %dx%d)...\n",
		*sceneType, selectedScene.GetPrimitiveCount(), selectedScene.Width, selectedScene.Height)

	// Create output directory for this scene
	outputDir := createOutputDir(*outputRoot, *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	raytracer := renderer.NewRaytracer(selectedScene, selectedScene.Width, selectedScene.Height)
	raytracer.SetShading(shading)
	raytracer.SetLogger(stdoutLogger{})

	startTime := time.Now()
	frame := raytracer.Render()
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Coverage: %.1f%% (%d of %d pixels hit geometry)\n",
		100*frame.Stats.Coverage(), frame.Stats.HitPixels, frame.Stats.TotalPixels)

	img := output.Upscale(frame.Image(), *scale)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := output.Save(filename, img); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)

	if *upload {
		if err := publish(cfg.S3, filename, img); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Println("Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
	}
	fmt.Println("  <name>     - scenes/<name>.json")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

func listScenes() error {
	scenes, err := scene.ListScenes()
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Printf("%-16s %-8s %s\n", info.ID, info.Type, info.DisplayName)
	}
	return nil
}

// createScene resolves a scene by name, falling back to the scene's own size for non-positive dimensions
func createScene(sceneType string, width, height int) (*scene.Scene, error) {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return scene.Create(sceneType, width, height)
}

// createOutputDir returns the output directory for a scene, using the file's base name for JSON paths
func createOutputDir(root, sceneType string) string {
	name := sceneType
	if strings.HasSuffix(name, ".json") {
		name = strings.TrimSuffix(filepath.Base(name), ".json")
	}
	if name == "" {
		name = "scene"
	}
	return filepath.Join(root, name)
}

// publish uploads the saved render to S3 under <scene>/<file>
func publish(s3Config output.S3Config, filename string, img image.Image) error {
	if !s3Config.Enabled() {
		return fmt.Errorf("upload requested but RT_S3_BUCKET is not set")
	}
	publisher, err := output.NewS3Publisher(s3Config, stdoutLogger{})
	if err != nil {
		return err
	}
	data, err := output.EncodeBytes(img, imaging.PNG)
	if err != nil {
		return err
	}
	key := path.Join(filepath.Base(filepath.Dir(filename)), filepath.Base(filename))
	_, err = publisher.Publish(context.Background(), key, data, output.ContentType(imaging.PNG))
	return err
}
