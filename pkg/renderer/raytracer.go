package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-raycaster/pkg/core"
)

// ErrUnknownMode is returned for render modes other than radiance and normals
var ErrUnknownMode = errors.New("unknown render mode")

// Mode selects what a pixel shows
type Mode string

const (
	ModeRadiance Mode = "radiance" // Traced radiance, the normal render
	ModeNormals  Mode = "normals"  // Surface normal of the first hit, for debugging geometry
)

// ParseMode converts a mode name to a Mode
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeRadiance, ModeNormals:
		return Mode(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Config contains configuration for the tile renderer
type Config struct {
	TileSize   int  // Size of each square tile in pixels
	NumWorkers int  // Concurrent tiles, 0 = runtime.NumCPU()
	Mode       Mode // What to render per pixel
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
		Mode:       ModeRadiance,
	}
}

// Tracer is what the raytracer needs from a scene. Implementations must be safe
// for concurrent use.
type Tracer interface {
	Trace(ray core.Ray) core.Spectrum
	Intersect(ray core.Ray) (*core.Intersection, bool)
}

// Raytracer renders a scene through a camera into an image, tile by tile
type Raytracer struct {
	tracer Tracer
	camera *Camera
	width  int
	height int
	config Config
	logger core.Logger
}

// NewRaytracer creates a new raytracer. Zero config fields fall back to DefaultConfig.
func NewRaytracer(tracer Tracer, camera *Camera, width, height int, config Config, logger core.Logger) *Raytracer {
	defaults := DefaultConfig()
	if config.TileSize <= 0 {
		config.TileSize = defaults.TileSize
	}
	if config.Mode == "" {
		config.Mode = defaults.Mode
	}
	if logger == nil {
		logger = core.NopLogger()
	}

	return &Raytracer{
		tracer: tracer,
		camera: camera,
		width:  width,
		height: height,
		config: config,
		logger: logger,
	}
}

// numWorkers returns the effective concurrency
func (rt *Raytracer) numWorkers() int {
	if rt.config.NumWorkers > 0 {
		return rt.config.NumWorkers
	}
	return runtime.NumCPU()
}

// Render traces every pixel and returns the finished image.
// Tiles render concurrently; cancelling ctx stops handing out new tiles.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidFilm, rt.width, rt.height)
	}
	if _, err := ParseMode(string(rt.config.Mode)); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)
	workers := rt.numWorkers()

	rt.logger.Printf("Rendering %dx%d (%s) in %d tiles with %d workers\n",
		rt.width, rt.height, rt.config.Mode, len(tiles), workers)

	var (
		mu    sync.Mutex
		stats RenderStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Tiles cover disjoint pixels, so writing to the shared image is safe
			tileStats := rt.renderTile(tile.Bounds, img)

			mu.Lock()
			stats.add(tileStats)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, fmt.Errorf("render aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, fmt.Errorf("render aborted: %w", err)
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render complete: %s\n", stats)
	return img, stats, nil
}

// renderTile renders the pixels within bounds into img
func (rt *Raytracer) renderTile(bounds image.Rectangle, img *image.RGBA) RenderStats {
	var stats RenderStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			stats.TotalPixels++

			ray, ok := rt.camera.GenerateRay(float64(x)+0.5, float64(y)+0.5)
			if !ok {
				stats.RaysFailed++
				img.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			stats.RaysTraced++

			pixel, hit := rt.shade(ray)
			if hit {
				stats.Hits++
			}
			img.SetRGBA(x, y, pixel)
		}
	}
	return stats
}

// shade computes the color of a single primary ray
func (rt *Raytracer) shade(ray core.Ray) (color.RGBA, bool) {
	hit, isHit := rt.tracer.Intersect(ray)

	if rt.config.Mode == ModeNormals {
		if !isHit {
			return color.RGBA{A: 255}, false
		}
		return UnitVectorAsColor(hit.Normal), true
	}

	return SpectrumToRGBA(rt.tracer.Trace(ray)), isHit
}
