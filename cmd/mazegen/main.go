// Command mazegen prints a seeded maze and optionally writes it as a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/config"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/raster"
	"github.com/beka-birhanu/vinom-maze/rng"
)

type options struct {
	width    int
	height   int
	algo     string
	seed     *int64 // nil picks one from the clock
	rooms    bool
	solve    bool
	pngPath  string
	cellSize int
}

func main() {
	var opts options
	flag.IntVar(&opts.width, "width", 21, "maze width in cells")
	flag.IntVar(&opts.height, "height", 11, "maze height in cells")
	flag.StringVar(&opts.algo, "algo", string(maze.DefaultAlgorithm), "algorithm: prim, backtracker or wilson")
	seed := flag.Int64("seed", 0, "seed; picked from the clock when not set")
	flag.BoolVar(&opts.rooms, "rooms", false, "print the room view (backtracker and wilson only)")
	flag.BoolVar(&opts.solve, "solve", false, "overlay the solution path")
	flag.StringVar(&opts.pngPath, "png", "", "write a PNG to this path")
	flag.IntVar(&opts.cellSize, "cell", 8, "PNG cell size in pixels")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seed = seed
		}
	})

	log, err := logger.New("MAZEGEN", config.ColorBlue, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(opts, log); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(opts options, log *logger.Logger) error {
	algorithm, err := maze.ParseAlgorithm(opts.algo)
	if err != nil {
		return err
	}
	seed := rng.NextSeed()
	if opts.seed != nil {
		seed = *opts.seed
	}

	if opts.rooms {
		return printRooms(algorithm, opts, seed, log)
	}

	gen, err := maze.New(algorithm)
	if err != nil {
		return err
	}

	started := time.Now()
	counter := rng.NewCounter(rng.Seeded(seed))
	grid, err := gen.Generate(opts.width, opts.height, counter.Float64)
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("Seed: %d (algorithm=%s size=%dx%d draws=%d took=%s)",
		seed, algorithm, opts.width, opts.height, counter.Draws(), time.Since(started)))

	if opts.solve {
		fmt.Println(render(grid, grid.Solution()))
	} else {
		fmt.Println(grid.String())
	}
	fmt.Printf("Seed: %d\n", seed)

	if opts.pngPath == "" {
		return nil
	}
	f, err := os.Create(opts.pngPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := raster.WritePNG(f, grid, raster.Layout{CellSize: opts.cellSize}, raster.DefaultPalette); err != nil {
		return err
	}
	log.Info("Wrote " + opts.pngPath)
	return nil
}

func printRooms(algorithm maze.Algorithm, opts options, seed int64, log *logger.Logger) error {
	rows, cols := (opts.height+1)/2, (opts.width+1)/2
	var (
		m   *maze.WallMaze
		err error
	)
	switch algorithm {
	case maze.Backtracker:
		m, err = maze.GenerateBacktracker(cols, rows, rng.Seeded(seed))
	case maze.Wilson:
		m, err = maze.GenerateWilson(cols, rows, rng.Seeded(seed))
	default:
		return errors.New("room view needs the backtracker or wilson algorithm")
	}
	if err != nil {
		return err
	}

	log.Info(fmt.Sprintf("Seed: %d (algorithm=%s rooms=%dx%d)", seed, algorithm, cols, rows))
	fmt.Print(m.String())
	fmt.Printf("Seed: %d\n", seed)
	return nil
}

// render draws the grid with the path marked between the start and end.
func render(g *maze.Grid, path []maze.CellPosition) string {
	onPath := make(map[maze.CellPosition]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	start, _ := g.Start()
	end, _ := g.End()

	buf := make([]rune, 0, (g.Width+1)*g.Height)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			p := maze.CellPosition{Row: row, Col: col}
			switch {
			case p == start:
				buf = append(buf, 'S')
			case p == end:
				buf = append(buf, 'E')
			case g.At(p) == maze.Wall:
				buf = append(buf, '█')
			case onPath[p]:
				buf = append(buf, '•')
			default:
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
