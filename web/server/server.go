package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-raytracer/pkg/scene"
)

// Size limits for web renders
const (
	MaxImageSize = 4096
	MaxScale     = 8
)

// Publisher uploads encoded renders, e.g. *output.S3Publisher
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// Server handles web requests for the raytracer
type Server struct {
	port      int
	publisher Publisher
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// SetPublisher enables upload=true on render requests
func (s *Server) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list scenes: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// SceneParams are the query parameters shared by render and inspect requests
type SceneParams struct {
	Scene  string // Scene name, see scene.Create
	Width  int    // 0 selects the scene's preferred size
	Height int
}

// parseCommonSceneParams parses scene, width and height
func parseCommonSceneParams(values url.Values) (SceneParams, error) {
	params := SceneParams{Scene: values.Get("scene")}
	if params.Scene == "" {
		params.Scene = "default"
	}

	var err error
	if params.Width, err = parseIntParam(values, "width", 0, 1, MaxImageSize); err != nil {
		return params, err
	}
	if params.Height, err = parseIntParam(values, "height", 0, 1, MaxImageSize); err != nil {
		return params, err
	}
	if (params.Width == 0) != (params.Height == 0) {
		return params, fmt.Errorf("width and height must be given together")
	}
	return params, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter, absent means false
func parseBoolParam(values url.Values, key string) (bool, error) {
	value := values.Get(key)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", key, value)
	}
	return parsed, nil
}

// createScene builds the requested scene, scenes larger than the limits are rejected
func createScene(params SceneParams) (*scene.Scene, error) {
	sceneObj, err := scene.Create(params.Scene, params.Width, params.Height)
	if err != nil {
		return nil, err
	}
	if sceneObj.Width > MaxImageSize || sceneObj.Height > MaxImageSize {
		return nil, fmt.Errorf("scene size %dx%d exceeds %d", sceneObj.Width, sceneObj.Height, MaxImageSize)
	}
	return sceneObj, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
