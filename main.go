package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/leonelquinteros/gotext"
	"github.com/urfave/cli/v2"

	"starmap/pkg/engine/bitmap"
	"starmap/pkg/engine/world"
	"starmap/pkg/game/annotation"
	"starmap/pkg/game/assets"
	"starmap/pkg/game/config"
	"starmap/pkg/game/devtools"
	"starmap/pkg/game/gameplay"
	"starmap/pkg/game/renderer"
	ebitenrenderer "starmap/pkg/game/renderer/ebiten"
	"starmap/pkg/game/renderer/tui"
	"starmap/pkg/game/state"
)

const (
	defaultAssets      = "assets"
	annotationsFile    = "annotations.csv"
	tilesManifestFile  = "tiles.csv"
	defaultBackendName = "ebiten"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
		logger.SetFlags(log.LstdFlags)
	}
	// Backends log through the standard logger
	log.SetOutput(logger.Writer())
	return logger
}

func initGettext(lang string) {
	gotext.Configure("locales", lang, "default")
}

// openTiles returns the tile source for dir. An explicit manifest wins over a
// tiles.csv found in dir; without either, tiles are named by index.
func openTiles(dir, pattern, manifest string, logger *log.Logger) (*assets.FS, error) {
	src := assets.NewFS(os.DirFS(dir), pattern)

	explicit := manifest != ""
	if !explicit {
		manifest = filepath.Join(dir, tilesManifestFile)
	}
	f, err := os.Open(manifest)
	if err != nil {
		if explicit {
			return nil, err
		}
		return src, nil
	}
	defer f.Close()

	names, err := assets.LoadManifest(f, world.StarChart, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifest, err)
	}
	src.UseManifest(names)
	return src, nil
}

// loadAnnotations never fails: a missing source leaves the chart unlabelled
func loadAnnotations(c *cli.Context, logger *log.Logger) *annotation.Index {
	var (
		idx *annotation.Index
		err error
	)
	if db := c.String("annotations-db"); db != "" {
		idx, err = annotation.LoadSQLite(c.Context, db, world.StarChart, logger)
	} else {
		path := c.String("annotations")
		if path == "" {
			path = filepath.Join(c.String("assets"), annotationsFile)
		}
		idx, err = annotation.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path), world.StarChart, logger)
	}
	if err != nil {
		logger.Printf("annotations: %v", err)
	}
	return idx
}

func newBackend(name string) (renderer.Backend, error) {
	switch name {
	case "ebiten":
		return ebitenrenderer.NewDefault(), nil
	case "tui":
		return tui.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

func view(c *cli.Context) error {
	logger := newLogger(c)
	initGettext(c.String("lang"))

	prefs := config.Current()
	if c.IsSet("scale") {
		if err := prefs.SetScale(c.Int("scale")); err != nil {
			logger.Printf("preferences: %v", err)
		}
	}
	name := c.String("backend")
	if !c.IsSet("backend") && prefs.Get().Backend != "" {
		name = prefs.Get().Backend
	}

	src, err := openTiles(c.String("assets"), c.String("tile-pattern"), c.String("tiles-manifest"), logger)
	if err != nil {
		return cli.Exit(err, 1)
	}

	v := state.NewViewer(world.StarChart, loadAnnotations(c, logger))
	if at := c.String("at"); at != "" {
		var x, y int
		if _, err := fmt.Sscanf(at, "%d,%d", &x, &y); err != nil {
			return cli.Exit(fmt.Sprintf("bad --at %q: want X,Y", at), 1)
		}
		v.Camera.SetPosition(float64(x), float64(y))
	}

	backend, err := newBackend(name)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := prefs.SetBackend(name); err != nil {
		logger.Printf("preferences: %v", err)
	}
	if err := backend.Init(); err != nil {
		return cli.Exit(err, 1)
	}
	defer backend.Close()

	frame := renderer.NewFrame(src, logger)
	opts := gameplay.Options{ScreenshotDir: c.String("screenshot-dir")}
	if err := gameplay.Run(v, backend, frame, opts); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

// tileStatus decodes tile index from src and discards the pixels
func tileStatus(src renderer.TileSource, grid world.Grid) devtools.TileStatus {
	return func(index int) error {
		r, err := src.Open(index)
		if err != nil {
			return err
		}
		defer r.Close()
		return bitmap.Decode(r, grid.TileWidth, grid.TileHeight, func(int, int) {})
	}
}

func check(c *cli.Context) error {
	logger := newLogger(c)

	src, err := openTiles(c.String("assets"), c.String("tile-pattern"), c.String("tiles-manifest"), logger)
	if err != nil {
		return cli.Exit(err, 1)
	}
	grid := world.StarChart
	status := tileStatus(src, grid)

	if c.Bool("dump") {
		cam := world.NewCenteredCamera(grid, world.ScreenWidth, world.ScreenHeight)
		devtools.DumpChart(os.Stdout, cam, loadAnnotations(c, logger), status)
	}

	failed := 0
	for index := 0; index < grid.Count(); index++ {
		if err := status(index); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", src.Name(index), err)
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d tiles failed", failed, grid.Count()), 1)
	}
	fmt.Printf("%d tiles ok\n", grid.Count())
	return nil
}

func sliceChart(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	logger := newLogger(c)

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return cli.Exit(err, 1)
	}

	dir := c.String("out")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cli.Exit(err, 1)
	}
	paths, err := assets.Slice(m, world.StarChart, dir, &assets.SliceOptions{
		Pattern: c.String("tile-pattern"),
		Invert:  c.Bool("invert"),
	})
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger.Printf("wrote %d tiles to %s", len(paths), dir)
	return nil
}

func importAnnotations(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	logger := newLogger(c)

	n, err := annotation.ImportSQLite(c.Context, c.Args().Get(0), c.Args().Get(1), world.StarChart, logger)
	if err != nil {
		if errors.Is(err, annotation.ErrSourceUnavailable) {
			return cli.Exit(err, 2)
		}
		return cli.Exit(err, 1)
	}
	fmt.Printf("imported %d annotations\n", n)
	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "starmap"
	app.Usage = "Pan a tiled star chart and read the labels under the cursor"
	app.Version = "1.0.0"

	tileFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "assets",
			EnvVars: []string{"STARMAP_ASSETS"},
			Value:   defaultAssets,
			Usage:   "directory holding the tiles and annotations.csv",
		},
		&cli.StringFlag{
			Name:  "tile-pattern",
			Value: assets.DefaultPattern,
			Usage: "file name pattern of a tile, given its index",
		},
		&cli.StringFlag{
			Name:  "tiles-manifest",
			Usage: "row,col,filename list naming the tiles (default: tiles.csv in the assets directory, if any)",
		},
		&cli.StringFlag{
			Name:    "annotations",
			EnvVars: []string{"STARMAP_ANNOTATIONS"},
			Usage:   "annotations CSV (default: annotations.csv in the assets directory)",
		},
		&cli.StringFlag{
			Name:  "annotations-db",
			Usage: "read annotations from this SQLite database instead of CSV",
		},
	}

	viewFlags := append([]cli.Flag{
		&cli.StringFlag{
			Name:    "backend",
			EnvVars: []string{"STARMAP_BACKEND"},
			Value:   defaultBackendName,
			Usage:   "display backend: ebiten or tui",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: config.DefaultScale,
			Usage: "window scale factor, remembered between runs",
		},
		&cli.StringFlag{
			Name:    "lang",
			EnvVars: []string{"STARMAP_LANG"},
			Value:   "en",
			Usage:   "language of the UI strings",
		},
		&cli.StringFlag{
			Name:  "at",
			Usage: "initial camera position as X,Y",
		},
		&cli.StringFlag{
			Name:  "screenshot-dir",
			Value: ".",
			Usage: "directory screenshots are written to",
		},
	}, tileFlags...)

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:   "view",
			Usage:  "Open the chart viewer",
			Flags:  viewFlags,
			Action: view,
		},
		{
			Name:  "check",
			Usage: "Decode every tile and report the ones that fail",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{
					Name:  "dump",
					Usage: "print the chart layout and annotations",
				},
			}, tileFlags...),
			Action: check,
		},
		{
			Name:      "slice",
			Usage:     "Cut a 640x640 chart image into tiles",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Value: defaultAssets,
					Usage: "directory the tiles are written to",
				},
				&cli.StringFlag{
					Name:  "tile-pattern",
					Value: assets.DefaultPattern,
					Usage: "file name pattern of a tile, given its index",
				},
				&cli.BoolFlag{
					Name:  "invert",
					Usage: "draw the lighter color, for white-on-black charts",
				},
			},
			Action: sliceChart,
		},
		{
			Name:  "annotations",
			Usage: "Manage annotation sources",
			Subcommands: []*cli.Command{
				{
					Name:      "import",
					Usage:     "Load a CSV into a SQLite database",
					ArgsUsage: "CSV DATABASE",
					Action:    importAnnotations,
				},
			},
		},
	}
	app.DefaultCommand = "view"

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
