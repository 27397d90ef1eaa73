// Command nonosolve loads a nonogram puzzle definition and runs the
// constraint-propagation engine against it: load config, build the
// puzzle, solve, report, exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"nonogram-solver/internal/core"
	"nonogram-solver/internal/loader"
	"nonogram-solver/internal/solver"
	"nonogram-solver/pkg/config"
	"nonogram-solver/pkg/constants"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	puzzleFile := flag.String("puzzle", cfg.PuzzleFile, "path to puzzle definition JSON")
	flag.Parse()

	puzzle, err := loader.Load(*puzzleFile)
	if err != nil {
		log.Fatalf("failed to load puzzle %s: %v", *puzzleFile, err)
	}
	log.Printf("loaded %dx%d puzzle, %d colours", puzzle.Height, puzzle.Width, puzzle.NColors)

	solverCfg := solverConfigFrom(cfg)
	engine := solver.New(puzzle, solverCfg)

	status := runGuarded(engine)

	report(engine, status)
	if status == core.Unsat || status == core.Stuck {
		os.Exit(1)
	}
}

// runGuarded recovers a *core.InvariantError panic at this, the
// outermost boundary of the engine, and turns it into a fatal log
// message. Anything else keeps propagating.
func runGuarded(engine *solver.Engine) (status core.SolveStatus) {
	defer func() {
		if r := recover(); r != nil {
			if ierr, ok := r.(*core.InvariantError); ok {
				log.Fatalf("internal error: %v", ierr)
			}
			panic(r)
		}
	}()
	return engine.Solve()
}

func solverConfigFrom(cfg *config.Config) solver.Config {
	sc := solver.DefaultConfig()
	sc.AllowBacktrack = cfg.AllowBacktrack
	sc.AllowProbe = cfg.AllowProbe
	sc.ProbeLevel = cfg.ProbeLevel
	sc.MergeProbe = cfg.MergeProbe
	sc.AllowExhaust = cfg.AllowExhaust
	sc.CheckUnique = cfg.CheckUnique

	switch cfg.RatingPolicy {
	case constants.RatingAdHoc:
		sc.RatingPolicy = solver.RatingAdHoc
	case constants.RatingMath:
		sc.RatingPolicy = solver.RatingMath
	default:
		sc.RatingPolicy = solver.RatingSimple
	}

	switch cfg.ColourPolicy {
	case constants.ColourMin:
		sc.ColourPolicy = solver.ColourMin
	case constants.ColourRandom:
		sc.ColourPolicy = solver.ColourRandom
	case constants.ColourContrast:
		sc.ColourPolicy = solver.ColourContrast
	default:
		sc.ColourPolicy = solver.ColourMax
	}

	return sc
}

// report prints a plain-text summary and grid dump.
func report(engine *solver.Engine, status core.SolveStatus) {
	fmt.Printf("status: %s\n", status)
	fmt.Printf("lines=%d guesses=%d probes=%d merges=%d backtracks=%d\n",
		engine.Stats.Lines, engine.Stats.Guesses, engine.Stats.Probes,
		engine.Stats.Merges, engine.Stats.Backtracks)

	if status == core.Solved && engine.Config.CheckUnique {
		fmt.Printf("unique: %v\n", engine.Unique)
	}

	if status != core.Solved {
		return
	}
	for _, row := range engine.Puzzle.Grid() {
		for _, colour := range row {
			if colour < 0 {
				fmt.Print(". ")
				continue
			}
			fmt.Printf("%d ", colour)
		}
		fmt.Println()
	}
}
