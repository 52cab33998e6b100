// Package comparative implements the comparative orchestrator (C10):
// one map, one algorithm pair, many game managers, grouped by outcome
// equivalence. Grounded on spec.md §4.7 and, for the worker dispatch
// shape, executor/main.go's per-task goroutine loop (now generalized
// into the pool package).
package comparative

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/tanktourney/tanktourney/board"
	"github.com/tanktourney/tanktourney/engine"
	"github.com/tanktourney/tanktourney/mapfile"
	"github.com/tanktourney/tanktourney/output"
	"github.com/tanktourney/tanktourney/pluginhost"
	"github.com/tanktourney/tanktourney/pool"
	"github.com/tanktourney/tanktourney/progress"
	"github.com/tanktourney/tanktourney/registry"
)

// Config bundles everything one comparative run needs. The caller has
// already parsed the map and enumerated the GM plugin files — this
// package owns only the load/dispatch/group pipeline.
type Config struct {
	MapPath    string
	Map        *mapfile.Map
	Algo1Path  string
	Algo2Path  string
	GMPaths    []string
	NumThreads int
	Loader     pluginhost.Loader
	Logger     *slog.Logger
	Updates    chan<- progress.Event
}

// Report is the fully grouped outcome of one comparative run, ready to
// hand to output.WriteComparative.
type Report struct {
	MapName   string
	Algo1Name string
	Algo2Name string
	Groups    []output.ComparativeGroup
}

type gmOutcome struct {
	name   string
	result engine.Result
	err    error
}

// Run loads both algorithms (sharing a single registry entry if their
// paths resolve to the same canonical file, per spec.md §4.7 step 2),
// dispatches one task per GM plugin across cfg.NumThreads workers, and
// groups the results by outcome equivalence.
func Run(cfg Config) (*Report, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := registry.New()

	algo1Name := filepath.Base(cfg.Algo1Path)
	algo2Name := filepath.Base(cfg.Algo2Path)

	canon1, err1 := pluginhost.CanonicalPath(cfg.Algo1Path)
	canon2, err2 := pluginhost.CanonicalPath(cfg.Algo2Path)
	if err1 != nil || err2 != nil {
		canon1, canon2 = filepath.Clean(cfg.Algo1Path), filepath.Clean(cfg.Algo2Path)
	}
	shared := canon1 != "" && canon1 == canon2

	// When they're not the same plugin, load both through an errgroup and
	// abort the whole run on either failure. Each load registers through
	// the registry's most recent entry, so the group runs one load at a
	// time.
	var h1, h2 *pluginhost.Handle
	if shared {
		h, err := cfg.Loader.LoadAlgorithm(cfg.Algo1Path, algo1Name, reg)
		if err != nil {
			return nil, fmt.Errorf("comparative: algorithm1: %w", err)
		}
		h1, h2 = h, h
		algo2Name = algo1Name
	} else {
		var g errgroup.Group
		g.SetLimit(1)
		g.Go(func() error {
			h, err := cfg.Loader.LoadAlgorithm(cfg.Algo1Path, algo1Name, reg)
			if err != nil {
				return fmt.Errorf("comparative: algorithm1: %w", err)
			}
			h1 = h
			return nil
		})
		g.Go(func() error {
			h, err := cfg.Loader.LoadAlgorithm(cfg.Algo2Path, algo2Name, reg)
			if err != nil {
				return fmt.Errorf("comparative: algorithm2: %w", err)
			}
			h2 = h
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	entry1, _ := reg.ByName(h1.Name)
	entry2, _ := reg.ByName(h2.Name)

	tasks := make([]pool.Task[gmOutcome], len(cfg.GMPaths))
	for i, path := range cfg.GMPaths {
		path := path
		tasks[i] = func() gmOutcome { return runOneGM(cfg, entry1, entry2, path, logger) }
	}

	outcomes := pool.Run(cfg.NumThreads, tasks)
	for i, o := range outcomes {
		if o.Recovered == nil {
			continue
		}
		name := filepath.Base(cfg.GMPaths[i])
		logger.Error("game panicked", "gm", name, "panic", o.Recovered)
		outcomes[i].Value = gmOutcome{name: name, err: fmt.Errorf("comparative: %s: panic: %v", name, o.Recovered)}
	}

	return &Report{
		MapName:   filepath.Base(cfg.MapPath),
		Algo1Name: algo1Name,
		Algo2Name: algo2Name,
		Groups:    groupOutcomes(outcomes),
	}, nil
}

func runOneGM(cfg Config, entry1, entry2 registry.Entry, path string, logger *slog.Logger) gmOutcome {
	name := filepath.Base(path)
	gmReg := registry.New()

	h, err := cfg.Loader.LoadGameManager(path, name, gmReg)
	if err != nil {
		logger.Error("plugin load failed", "path", path, "err", err)
		return gmOutcome{name: name, err: err}
	}
	defer cfg.Loader.Unload(h, gmReg)

	gmEntry, _ := gmReg.ByName(name)
	gm := gmEntry.GMFactory()

	w, hgt := cfg.Map.Board.W, cfg.Map.Board.H
	player1 := entry1.Player(1, w, hgt, cfg.Map.MaxSteps, cfg.Map.NumShells)
	player2 := entry2.Player(2, w, hgt, cfg.Map.MaxSteps, cfg.Map.NumShells)

	result, err := gm.Play(engine.Config{
		Board:     cfg.Map.Board.Clone(),
		MaxSteps:  cfg.Map.MaxSteps,
		NumShells: cfg.Map.NumShells,
		Player1:   player1,
		Player2:   player2,
		Algo1:     entry1.TankFactory,
		Algo2:     entry2.TankFactory,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("game failed", "gm", name, "err", err)
		progress.Send(cfg.Updates, progress.Event{Label: name, Summary: err.Error()})
		return gmOutcome{name: name, err: err}
	}

	result.FinalBoard = result.FinalBoard.Clone()
	progress.Send(cfg.Updates, progress.Event{Label: name, Summary: result.Description()})
	return gmOutcome{name: name, result: result}
}

// groupOutcomes clusters successful outcomes by equivalence — same
// winner, reason, rounds, and final board under board.Equal's '$'-is-'#'
// normalization — and orders groups most-frequent-first.
func groupOutcomes(outcomes []pool.Outcome[gmOutcome]) []output.ComparativeGroup {
	var groups []output.ComparativeGroup

	for _, o := range outcomes {
		if o.Value.err != nil {
			continue
		}
		placed := false
		for i := range groups {
			if resultsEqual(groups[i].Result, o.Value.result) {
				groups[i].GMNames = append(groups[i].GMNames, o.Value.name)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, output.ComparativeGroup{
				GMNames: []string{o.Value.name},
				Result:  o.Value.result,
			})
		}
	}

	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			if len(groups[j].GMNames) > len(groups[i].GMNames) {
				groups[i], groups[j] = groups[j], groups[i]
			}
		}
	}
	return groups
}

func resultsEqual(a, b engine.Result) bool {
	return a.Winner == b.Winner && a.Reason == b.Reason && a.Rounds == b.Rounds && board.Equal(a.FinalBoard, b.FinalBoard)
}
