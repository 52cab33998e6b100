// Package competition implements the competition orchestrator (C11):
// a folder of maps, one game manager, and a folder of algorithms (at
// least two), round-robin scheduled across maps with lazily loaded,
// reference-counted algorithm plugins. Grounded on spec.md §4.8.
package competition

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/tanktourney/tanktourney/engine"
	"github.com/tanktourney/tanktourney/mapfile"
	"github.com/tanktourney/tanktourney/output"
	"github.com/tanktourney/tanktourney/pluginhost"
	"github.com/tanktourney/tanktourney/pool"
	"github.com/tanktourney/tanktourney/progress"
	"github.com/tanktourney/tanktourney/registry"
)

// Config bundles everything one competition run needs. AlgoPaths must
// have at least 2 entries; MapPaths/Maps are parallel slices (the
// caller has already parsed each map file).
type Config struct {
	GMPath     string
	MapPaths   []string
	Maps       []*mapfile.Map
	AlgoPaths  []string
	NumThreads int
	Loader     pluginhost.Loader
	Logger     *slog.Logger
	Updates    chan<- progress.Event
}

// pairing is one scheduled game: algorithm indices into cfg.AlgoPaths,
// and the map index it runs on.
type pairing struct {
	mapIndex int
	algoA    int
	algoB    int
}

// Schedule computes the rotation-index pairing from spec.md §4.8: for
// map index k, rotation r = k mod (N-1); algorithm i is paired with
// (i+1+r) mod N, with unordered duplicates collapsed per map.
func Schedule(numAlgos, numMaps int) []pairing {
	if numAlgos < 2 {
		return nil
	}
	var schedule []pairing
	for k := 0; k < numMaps; k++ {
		r := k % (numAlgos - 1)
		seen := make(map[[2]int]bool)
		for i := 0; i < numAlgos; i++ {
			j := (i + 1 + r) % numAlgos
			key := [2]int{i, j}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			schedule = append(schedule, pairing{mapIndex: k, algoA: key[0], algoB: key[1]})
		}
	}
	return schedule
}

type gameOutcome struct {
	algoA, algoB int
	result       engine.Result
	err          error
}

// loadedAlgo is one lazily loaded algorithm plugin plus its remaining
// scheduled-game count.
type loadedAlgo struct {
	handle *pluginhost.Handle
	entry  registry.Entry
	uses   int
}

// Run schedules every pairing, lazily loads algorithms with reference
// counting (closing a plugin's registry entry once its last scheduled
// game finishes), runs every game through cfg.NumThreads workers, and
// returns one score row per algorithm in cfg.AlgoPaths order
// (output.WriteCompetition sorts the rows descending).
func Run(cfg Config) ([]output.Score, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.AlgoPaths) < 2 {
		return nil, fmt.Errorf("competition: need at least 2 algorithms, got %d", len(cfg.AlgoPaths))
	}

	reg := registry.New()
	gmEntryName := filepath.Base(cfg.GMPath)
	gmHandle, err := cfg.Loader.LoadGameManager(cfg.GMPath, gmEntryName, reg)
	if err != nil {
		return nil, fmt.Errorf("competition: game manager: %w", err)
	}
	defer cfg.Loader.Unload(gmHandle, reg)
	gmEntry, _ := reg.ByName(gmEntryName)

	schedule := Schedule(len(cfg.AlgoPaths), len(cfg.Maps))

	usageCount := make([]int, len(cfg.AlgoPaths))
	for _, p := range schedule {
		usageCount[p.algoA]++
		usageCount[p.algoB]++
	}

	var mu sync.Mutex
	algos := make([]*loadedAlgo, len(cfg.AlgoPaths))

	acquire := func(i int) (*loadedAlgo, error) {
		mu.Lock()
		defer mu.Unlock()
		if algos[i] == nil {
			name := filepath.Base(cfg.AlgoPaths[i])
			h, err := cfg.Loader.LoadAlgorithm(cfg.AlgoPaths[i], name, reg)
			if err != nil {
				return nil, err
			}
			entry, _ := reg.ByName(name)
			algos[i] = &loadedAlgo{handle: h, entry: entry, uses: usageCount[i]}
		}
		return algos[i], nil
	}

	release := func(i int) {
		mu.Lock()
		defer mu.Unlock()
		a := algos[i]
		if a == nil {
			return
		}
		a.uses--
		if a.uses <= 0 {
			cfg.Loader.Unload(a.handle, reg)
			algos[i] = nil
		}
	}

	tasks := make([]pool.Task[gameOutcome], len(schedule))
	for t, p := range schedule {
		p := p
		tasks[t] = func() gameOutcome {
			return runOnePairing(cfg, gmEntry, acquire, release, p, logger)
		}
	}

	outcomes := pool.Run(cfg.NumThreads, tasks)
	for i, o := range outcomes {
		if o.Recovered == nil {
			continue
		}
		p := schedule[i]
		logger.Error("game panicked", "map", cfg.MapPaths[p.mapIndex], "panic", o.Recovered)
		outcomes[i].Value = gameOutcome{algoA: p.algoA, algoB: p.algoB, err: fmt.Errorf("competition: panic: %v", o.Recovered)}
	}

	scores := make([]int, len(cfg.AlgoPaths))
	for _, o := range outcomes {
		if o.Value.err != nil {
			continue
		}
		r := o.Value.result
		switch r.Winner {
		case 1:
			scores[o.Value.algoA] += 3
		case 2:
			scores[o.Value.algoB] += 3
		default:
			scores[o.Value.algoA]++
			scores[o.Value.algoB]++
		}
	}

	result := make([]output.Score, len(cfg.AlgoPaths))
	for i, path := range cfg.AlgoPaths {
		result[i] = output.Score{AlgoName: filepath.Base(path), Points: scores[i]}
	}
	return result, nil
}

func runOnePairing(cfg Config, gmEntry registry.Entry, acquire func(int) (*loadedAlgo, error), release func(int), p pairing, logger *slog.Logger) gameOutcome {
	a, err := acquire(p.algoA)
	if err != nil {
		logger.Error("plugin load failed", "path", cfg.AlgoPaths[p.algoA], "err", err)
		return gameOutcome{algoA: p.algoA, algoB: p.algoB, err: err}
	}
	defer release(p.algoA)

	b, err := acquire(p.algoB)
	if err != nil {
		logger.Error("plugin load failed", "path", cfg.AlgoPaths[p.algoB], "err", err)
		return gameOutcome{algoA: p.algoA, algoB: p.algoB, err: err}
	}
	defer release(p.algoB)

	m := cfg.Maps[p.mapIndex]
	gm := gmEntry.GMFactory()

	player1 := a.entry.Player(1, m.Board.W, m.Board.H, m.MaxSteps, m.NumShells)
	player2 := b.entry.Player(2, m.Board.W, m.Board.H, m.MaxSteps, m.NumShells)

	result, err := gm.Play(engine.Config{
		Board:     m.Board.Clone(),
		MaxSteps:  m.MaxSteps,
		NumShells: m.NumShells,
		Player1:   player1,
		Player2:   player2,
		Algo1:     a.entry.TankFactory,
		Algo2:     b.entry.TankFactory,
		Logger:    logger,
	})
	label := fmt.Sprintf("%s vs %s", filepath.Base(cfg.AlgoPaths[p.algoA]), filepath.Base(cfg.AlgoPaths[p.algoB]))
	if err != nil {
		logger.Error("game failed", "map", cfg.MapPaths[p.mapIndex], "err", err)
		progress.Send(cfg.Updates, progress.Event{Label: label, Summary: err.Error()})
		return gameOutcome{algoA: p.algoA, algoB: p.algoB, err: err}
	}

	progress.Send(cfg.Updates, progress.Event{Label: label, Summary: result.Description()})
	return gameOutcome{algoA: p.algoA, algoB: p.algoB, result: result}
}
