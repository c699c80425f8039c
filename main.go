package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene   string
	width   int
	height  int
	workers int
	tile    int
	mode    string
	depth   int
	out     string
	frustum bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "default", "Built-in scene name or path to a .json scene description")
	flag.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	flag.IntVar(&opts.workers, "workers", 0, "Concurrent tiles (0 = all CPUs)")
	flag.IntVar(&opts.tile, "tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	flag.StringVar(&opts.mode, "mode", string(renderer.ModeRadiance), "Render mode: 'radiance' or 'normals'")
	flag.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	flag.StringVar(&opts.out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	flag.BoolVar(&opts.frustum, "frustum", false, "Print the view frustum corners before rendering")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Raycaster")
		fmt.Println("Usage: raycaster [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - Three white spheres on a grey ground plane")
		fmt.Println("  single  - One white sphere under a directional light")
		fmt.Println("  <file>.json - A scene description file")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	filename, err := run(ctx, opts, renderer.NewDefaultLogger())
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

// run renders the selected scene and writes the PNG, returning its path
func run(ctx context.Context, opts options, logger core.Logger) (string, error) {
	desc, err := loadDescription(opts.scene)
	if err != nil {
		return "", err
	}
	if opts.width > 0 {
		desc.Width = opts.width
	}
	if opts.height > 0 {
		desc.Height = opts.height
	}
	if opts.depth > 0 {
		desc.MaxDepth = opts.depth
	}

	mode, err := renderer.ParseMode(opts.mode)
	if err != nil {
		return "", err
	}

	sceneObj, camera, err := desc.Build(scene.WithLogger(logger))
	if err != nil {
		return "", fmt.Errorf("failed to build scene: %w", err)
	}

	if opts.frustum {
		cfg := desc.Camera
		logger.Printf("View frustum corners (near=%v, far=%v):\n", cfg.Near, cfg.Far)
		for _, corner := range camera.FrustumCorners(cfg.Near, cfg.Far) {
			logger.Printf("  %v %v near %v\n", corner.X, corner.Y, corner.Near)
			logger.Printf("  %v %v far  %v\n", corner.X, corner.Y, corner.Far)
		}
	}

	config := renderer.Config{TileSize: opts.tile, NumWorkers: opts.workers, Mode: mode}
	rt := renderer.NewRaytracer(sceneObj, camera, desc.Width, desc.Height, config, logger)

	img, stats, err := rt.Render(ctx)
	if err != nil {
		return "", err
	}
	logger.Printf("Average luminance: %.4f\n", renderer.AverageLuminance(img))
	logger.Printf("Hits: %d of %d pixels\n", stats.Hits, stats.TotalPixels)

	filename := opts.out
	if filename == "" {
		filename = filepath.Join(createOutputDir(opts.scene), fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}
	if err := writePNG(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// loadDescription resolves a built-in name or a .json path
func loadDescription(name string) (*scene.Description, error) {
	if strings.HasSuffix(name, ".json") {
		return scene.LoadDescription(name)
	}
	return scene.Builtin(name)
}

// createOutputDir returns output/<scene>, using the file stem for description files
func createOutputDir(sceneName string) string {
	base := sceneName
	if strings.HasSuffix(base, ".json") {
		base = strings.TrimSuffix(filepath.Base(base), ".json")
	}
	if base == "" {
		base = "scene"
	}
	return filepath.Join("output", base)
}

// writePNG encodes img to filename, creating parent directories
func writePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}
