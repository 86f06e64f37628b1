package server

import (
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Response formats of /api/render
const (
	FormatPNG  = "png"
	FormatRGBA = "rgba"
	FormatJSON = "json"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneParams
	Format  string           // png, rgba or json
	Scale   int              // Nearest-neighbour upscale for encoded formats
	Shading renderer.Shading // Hit shading mode
	Upload  bool             // Publish the PNG through the configured publisher
}

// RenderResponse is the body of a format=json render
type RenderResponse struct {
	Scene     string               `json:"scene"`
	Width     int                  `json:"width"`
	Height    int                  `json:"height"`
	Stats     renderer.RenderStats `json:"stats"`
	Coverage  float64              `json:"coverage"`
	ElapsedMs int64                `json:"elapsedMs"`
	ImageData string               `json:"imageData"` // PNG data URI
	Location  string               `json:"location,omitempty"`
	Console   []ConsoleMessage     `json:"console,omitempty"`
}

var renderCounter atomic.Int64

// handleRender renders one frame synchronously and writes it in the requested format
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if req.Upload && s.publisher == nil {
		writeError(w, http.StatusBadRequest, "Uploads are not configured")
		return
	}

	consoleChan, renderID, logger := setupConsoleLogging()

	sceneObj, err := createScene(req.SceneParams)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raytracer := renderer.NewRaytracer(sceneObj, sceneObj.Width, sceneObj.Height)
	raytracer.SetShading(req.Shading)
	raytracer.SetLogger(logger)

	startTime := time.Now()
	frame := raytracer.Render()
	elapsed := time.Since(startTime)
	img := output.Upscale(frame.Image(), req.Scale)

	var location string
	if req.Upload {
		data, err := output.EncodeBytes(img, imaging.PNG)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		name := fmt.Sprintf("%s/%s.png", req.Scene, renderID)
		location, err = s.publisher.Publish(r.Context(), name, data, output.ContentType(imaging.PNG))
		if err != nil {
			logger.Printf("Upload failed: %v\n", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		w.Header().Set("X-Render-Location", location)
	}

	switch req.Format {
	case FormatRGBA:
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("X-Image-Width", strconv.Itoa(frame.Width))
		w.Header().Set("X-Image-Height", strconv.Itoa(frame.Height))
		w.WriteHeader(http.StatusOK)
		w.Write(frame.Pix)

	case FormatJSON:
		imageData, err := output.DataURI(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		bounds := img.Bounds()
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     req.Scene,
			Width:     bounds.Dx(),
			Height:    bounds.Dy(),
			Stats:     frame.Stats,
			Coverage:  frame.Stats.Coverage(),
			ElapsedMs: elapsed.Milliseconds(),
			ImageData: imageData,
			Location:  location,
			Console:   drainConsole(consoleChan),
		})

	default:
		w.Header().Set("Content-Type", output.ContentType(imaging.PNG))
		if err := output.Encode(w, img, imaging.PNG); err != nil {
			logger.Printf("Failed to write PNG: %v\n", err)
		}
	}
}

// setupConsoleLogging creates console channel and web logger for a render
func setupConsoleLogging() (chan ConsoleMessage, string, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d-%d", time.Now().Unix(), renderCounter.Add(1))
	return consoleChan, renderID, NewWebLogger(renderID, consoleChan)
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()

	params, err := parseCommonSceneParams(values)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{SceneParams: params}

	req.Format = values.Get("format")
	switch req.Format {
	case "":
		req.Format = FormatPNG
	case FormatPNG, FormatRGBA, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown format %q (want png, rgba or json)", req.Format)
	}

	if req.Scale, err = parseIntParam(values, "scale", 1, 1, MaxScale); err != nil {
		return nil, err
	}
	if req.Format == FormatRGBA && req.Scale != 1 {
		return nil, fmt.Errorf("scale is not supported for rgba output")
	}
	if req.Shading, err = renderer.ParseShading(values.Get("shading")); err != nil {
		return nil, err
	}
	if req.Upload, err = parseBoolParam(values, "upload"); err != nil {
		return nil, err
	}
	return req, nil
}
