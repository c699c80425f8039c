package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

const (
	maxImageSize    = 2000
	maxDepth        = 64
	consoleLimit    = 200
	renderLogBuffer = 64
)

// Server renders built-in scenes to PNG over HTTP
type Server struct {
	port     int
	workers  int
	console  *console
	renderID atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{
		port:    port,
		console: newConsole(consoleLimit),
	}
}

// SetWorkers sets the render concurrency, 0 uses every CPU
func (s *Server) SetWorkers(workers int) {
	s.workers = workers
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string        // Built-in scene name
	Width  int           // Image width, 0 keeps the scene's
	Height int           // Image height, 0 keeps the scene's
	Depth  int           // Bounce depth, 0 keeps the scene's
	Mode   renderer.Mode // What each pixel shows
}

// SceneInfo describes a built-in scene for /api/scenes
type SceneInfo struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Entities int    `json:"entities"`
	Lights   int    `json:"lights"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/console", s.handleConsole)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []SceneInfo
	for _, name := range scene.BuiltinNames() {
		desc, err := scene.Builtin(name)
		if err != nil {
			continue
		}
		scenes = append(scenes, SceneInfo{
			Name:     name,
			Width:    desc.Width,
			Height:   desc.Height,
			Entities: len(desc.Entities),
			Lights:   len(desc.Lights),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scenes})
}

// handleConsole returns recent render log lines
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": s.console.snapshot()})
}

// handleRender renders a scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	desc, err := scene.Builtin(req.Scene)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if req.Width > 0 {
		desc.Width = req.Width
	}
	if req.Height > 0 {
		desc.Height = req.Height
	}
	if req.Depth > 0 {
		desc.MaxDepth = req.Depth
	}

	renderID := fmt.Sprintf("render-%d", s.renderID.Add(1))
	consoleChan := make(chan ConsoleMessage, renderLogBuffer)
	defer s.console.drain(consoleChan)
	logger := NewWebLogger(renderID, consoleChan)

	sceneObj, camera, err := desc.Build(scene.WithLogger(logger))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build scene: %v", err), http.StatusBadRequest)
		return
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = s.workers
	config.Mode = req.Mode
	rt := renderer.NewRaytracer(sceneObj, camera, desc.Width, desc.Height, config, logger)

	img, stats, err := rt.Render(r.Context())
	if err != nil {
		logger.Printf("Render failed: %v\n", err)
		http.Error(w, fmt.Sprintf("Render failed: %v", err), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode PNG: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Hits", strconv.Itoa(stats.Hits))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default", Mode: renderer.ModeRadiance}

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if mode := query.Get("mode"); mode != "" {
		if req.Mode, err = renderer.ParseMode(mode); err != nil {
			return nil, err
		}
	}
	return req, nil
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
