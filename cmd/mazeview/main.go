// Command mazeview shows seeded mazes in the terminal.
//
// Keys: r regenerates with a fresh seed, s toggles the solution, a cycles the
// algorithm, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-maze/config"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/rng"
	"github.com/gdamore/tcell/v2"
)

var (
	wallStyle    = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	passageStyle = tcell.StyleDefault
	startStyle   = tcell.StyleDefault.Background(tcell.ColorGreen)
	endStyle     = tcell.StyleDefault.Background(tcell.ColorRed)
	pathStyle    = tcell.StyleDefault.Foreground(tcell.ColorGold)
	statusStyle  = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
)

// viewer owns the current maze and redraws it on the screen.
type viewer struct {
	screen       tcell.Screen
	width        int
	height       int
	algorithm    maze.Algorithm
	seed         int64
	grid         *maze.Grid
	path         []maze.CellPosition
	showSolution bool
	log          *logger.Logger
}

func main() {
	width := flag.Int("width", 0, "maze width in cells; 0 fits the terminal")
	height := flag.Int("height", 0, "maze height in cells; 0 fits the terminal")
	algo := flag.String("algo", string(maze.DefaultAlgorithm), "algorithm: prim, backtracker or wilson")
	seed := flag.Int64("seed", 0, "first seed; picked from the clock when not set")
	logPath := flag.String("log", "mazeview.log", "file receiving the seed log")
	flag.Parse()

	first := rng.NextSeed()
	if flagSet("seed") {
		first = *seed
	}
	if err := run(*width, *height, *algo, first, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(width, height int, algo string, seed int64, logPath string) error {
	algorithm, err := maze.ParseAlgorithm(algo)
	if err != nil {
		return err
	}

	// The screen owns stdout, so the seed log goes to a file.
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log, err := logger.New("MAZEVIEW", config.ColorMagenta, logFile)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{
		screen:    screen,
		width:     width,
		height:    height,
		algorithm: algorithm,
		seed:      seed,
		log:       log,
	}
	if err := v.generate(); err != nil {
		return err
	}
	v.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			v.draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			switch ev.Rune() {
			case 'q':
				return nil
			case 'r':
				v.seed = rng.NextSeed()
				if err := v.generate(); err != nil {
					return err
				}
			case 'a':
				v.algorithm = nextAlgorithm(v.algorithm)
				if err := v.generate(); err != nil {
					return err
				}
			case 's':
				v.showSolution = !v.showSolution
			}
			v.draw()
		}
	}
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func nextAlgorithm(a maze.Algorithm) maze.Algorithm {
	for idx, candidate := range maze.Algorithms {
		if candidate == a {
			return maze.Algorithms[(idx+1)%len(maze.Algorithms)]
		}
	}
	return maze.DefaultAlgorithm
}

// size returns the requested maze size, or one that fits the screen above the status line.
func (v *viewer) size() (int, int) {
	screenW, screenH := v.screen.Size()
	w, h := v.width, v.height
	if w <= 0 {
		w = max(1, screenW/2)
	}
	if h <= 0 {
		h = max(1, screenH-1)
	}
	return w, h
}

func (v *viewer) generate() error {
	gen, err := maze.New(v.algorithm)
	if err != nil {
		return err
	}
	w, h := v.size()
	grid, err := gen.Generate(w, h, rng.Seeded(v.seed))
	if err != nil {
		return err
	}
	v.grid = grid
	v.path = grid.Solution()
	v.log.Info(fmt.Sprintf("Seed: %d (algorithm=%s size=%dx%d)", v.seed, v.algorithm, w, h))
	return nil
}

// draw paints every cell as two terminal columns so rooms look square.
func (v *viewer) draw() {
	v.screen.Clear()

	onPath := make(map[maze.CellPosition]bool, len(v.path))
	if v.showSolution {
		for _, p := range v.path {
			onPath[p] = true
		}
	}
	start, _ := v.grid.Start()
	end, _ := v.grid.End()

	for row := 0; row < v.grid.Height; row++ {
		for col := 0; col < v.grid.Width; col++ {
			p := maze.CellPosition{Row: row, Col: col}
			style, ch := passageStyle, ' '
			switch {
			case p == start:
				style = startStyle
			case p == end:
				style = endStyle
			case v.grid.At(p) == maze.Wall:
				style = wallStyle
			case onPath[p]:
				style, ch = pathStyle, '•'
			}
			v.screen.SetContent(col*2, row, ch, nil, style)
			v.screen.SetContent(col*2+1, row, ' ', nil, style)
		}
	}

	status := fmt.Sprintf("Seed: %d  algorithm: %s  [r]egenerate [s]olution [a]lgorithm [q]uit", v.seed, v.algorithm)
	for idx, r := range status {
		v.screen.SetContent(idx, v.grid.Height, r, nil, statusStyle)
	}
	v.screen.Show()
}
