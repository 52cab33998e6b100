// Command tanktourney runs the tank-battle tournament system described by
// the external CLI contract: either comparative mode (one map, two
// algorithms, a folder of game managers) or competition mode (a folder of
// maps, one game manager, a folder of algorithms), driven by bare
// key=value arguments plus a handful of dash switches. Grounded on
// original_source/Simulator/sim_src/cmd_parser.cpp for the argument
// shape, and on executor/main.go for the flag-parsing and progress-loop
// idiom.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tanktourney/tanktourney/cmd/tanktourney/tui"
	"github.com/tanktourney/tanktourney/logging"
	"github.com/tanktourney/tanktourney/mapfile"
	"github.com/tanktourney/tanktourney/output"
	"github.com/tanktourney/tanktourney/pluginhost"
	"github.com/tanktourney/tanktourney/progress"
	"github.com/tanktourney/tanktourney/tournament/comparative"
	"github.com/tanktourney/tanktourney/tournament/competition"
)

const usage = `Usage:
  tanktourney -comparative game_map=<file> game_managers_folder=<folder> \
      algorithm1=<file> algorithm2=<file> \
      [num_threads=<n>] [-verbose] [-logger=<path>] [-debug] [-tui]

  tanktourney -competition game_maps_folder=<folder> game_manager=<file> \
      algorithms_folder=<folder> \
      [num_threads=<n>] [-verbose] [-logger=<path>] [-debug] [-tui]
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("tanktourney", flag.ContinueOnError)
	comparativeMode := fs.Bool("comparative", false, "run the comparative orchestrator")
	competitionMode := fs.Bool("competition", false, "run the competition orchestrator")
	verbose := fs.Bool("verbose", false, "raise the log level to debug")
	debugFlag := fs.Bool("debug", false, "include source locations in log output")
	loggerPath := fs.String("logger", "", "write structured logs to this file (logging is disabled if omitted)")
	useTUI := fs.Bool("tui", false, "show the progress dashboard instead of plain log lines")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }

	if err := fs.Parse(argv); err != nil {
		return 1
	}

	if *comparativeMode == *competitionMode {
		fmt.Fprintln(fs.Output(), "exactly one of -comparative or -competition must be specified")
		fs.Usage()
		return 1
	}

	kv, err := parseKV(fs.Args())
	if err != nil {
		fmt.Fprintln(fs.Output(), err)
		return 1
	}

	numThreads, err := readNumThreads(kv)
	if err != nil {
		fmt.Fprintln(fs.Output(), err)
		return 1
	}

	logger, closeLogger := buildLogger(*loggerPath, *verbose, *debugFlag)
	defer closeLogger()

	if *comparativeMode {
		err = runComparative(kv, numThreads, logger, *useTUI)
	} else {
		err = runCompetition(kv, numThreads, logger, *useTUI)
	}
	if err != nil {
		fmt.Fprintln(fs.Output(), err)
		return 1
	}
	return 0
}

func runComparative(kv map[string]string, numThreads int, logger *slog.Logger, useTUI bool) error {
	required := []string{"game_map", "game_managers_folder", "algorithm1", "algorithm2"}
	valid := append(append([]string{}, required...), "num_threads")
	if err := requireKeys(kv, required); err != nil {
		return err
	}
	if err := rejectUnknownKeys(kv, valid); err != nil {
		return err
	}

	mapPath := kv["game_map"]
	gmFolder := kv["game_managers_folder"]
	algo1Path := kv["algorithm1"]
	algo2Path := kv["algorithm2"]

	if !isReadableFile(mapPath) {
		return fmt.Errorf("invalid or unreadable file: %s", mapPath)
	}
	if !isNonEmptyDir(gmFolder) {
		return fmt.Errorf("invalid or empty folder: %s", gmFolder)
	}
	if !isReadableFile(algo1Path) {
		return fmt.Errorf("invalid or unreadable file: %s", algo1Path)
	}
	if !isReadableFile(algo2Path) {
		return fmt.Errorf("invalid or unreadable file: %s", algo2Path)
	}

	f, err := os.Open(mapPath)
	if err != nil {
		return fmt.Errorf("game_map: %w", err)
	}
	m, warnings, err := mapfile.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("game_map: %w", err)
	}
	for _, w := range warnings {
		logger.Warn("map parse", "warning", w.String())
	}

	gmPaths, err := filepath.Glob(filepath.Join(gmFolder, "*.so"))
	if err != nil {
		return fmt.Errorf("game_managers_folder: %w", err)
	}
	if len(gmPaths) == 0 {
		return fmt.Errorf("no game manager plugins found in %s", gmFolder)
	}

	updates := make(chan progress.Event, len(gmPaths))
	cfg := comparative.Config{
		MapPath:    mapPath,
		Map:        m,
		Algo1Path:  algo1Path,
		Algo2Path:  algo2Path,
		GMPaths:    gmPaths,
		NumThreads: numThreads,
		Loader:     pluginhost.SOLoader{},
		Logger:     logger,
		Updates:    updates,
	}

	var report *comparative.Report
	var runErr error
	done := make(chan struct{})
	go func() {
		report, runErr = comparative.Run(cfg)
		close(updates)
		close(done)
	}()
	displayProgress(fmt.Sprintf("comparative: %s", filepath.Base(mapPath)), len(gmPaths), updates, useTUI)
	<-done

	if runErr != nil {
		return fmt.Errorf("comparative run: %w", runErr)
	}

	outPath := fmt.Sprintf("comparative_results_%s.txt", time.Now().Format("20060102-150405"))
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	if err := output.WriteComparative(out, report.MapName, report.Algo1Name, report.Algo2Name, report.Groups); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Println(outPath)
	return nil
}

func runCompetition(kv map[string]string, numThreads int, logger *slog.Logger, useTUI bool) error {
	required := []string{"game_maps_folder", "game_manager", "algorithms_folder"}
	valid := append(append([]string{}, required...), "num_threads")
	if err := requireKeys(kv, required); err != nil {
		return err
	}
	if err := rejectUnknownKeys(kv, valid); err != nil {
		return err
	}

	mapsFolder := kv["game_maps_folder"]
	gmPath := kv["game_manager"]
	algosFolder := kv["algorithms_folder"]

	if !isNonEmptyDir(mapsFolder) {
		return fmt.Errorf("invalid or empty folder: %s", mapsFolder)
	}
	if !isReadableFile(gmPath) {
		return fmt.Errorf("invalid or unreadable file: %s", gmPath)
	}
	if !isNonEmptyDir(algosFolder) {
		return fmt.Errorf("invalid or empty folder: %s", algosFolder)
	}

	entries, err := os.ReadDir(mapsFolder)
	if err != nil {
		return fmt.Errorf("game_maps_folder: %w", err)
	}
	var mapPaths []string
	var maps []*mapfile.Map
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(mapsFolder, e.Name())
		f, err := os.Open(path)
		if err != nil {
			logger.Error("map open failed", "path", path, "err", err)
			continue
		}
		m, warnings, err := mapfile.Parse(f)
		f.Close()
		if err != nil {
			logger.Error("map parse failed, skipping", "path", path, "err", err)
			continue
		}
		for _, w := range warnings {
			logger.Warn("map parse", "path", path, "warning", w.String())
		}
		mapPaths = append(mapPaths, path)
		maps = append(maps, m)
	}
	if len(maps) == 0 {
		return fmt.Errorf("no parseable map files found in %s", mapsFolder)
	}

	algoPaths, err := filepath.Glob(filepath.Join(algosFolder, "*.so"))
	if err != nil {
		return fmt.Errorf("algorithms_folder: %w", err)
	}
	if len(algoPaths) < 2 {
		return fmt.Errorf("need at least 2 algorithm plugins in %s, found %d", algosFolder, len(algoPaths))
	}

	total := len(competition.Schedule(len(algoPaths), len(maps)))
	updates := make(chan progress.Event, total)
	cfg := competition.Config{
		GMPath:     gmPath,
		MapPaths:   mapPaths,
		Maps:       maps,
		AlgoPaths:  algoPaths,
		NumThreads: numThreads,
		Loader:     pluginhost.SOLoader{},
		Logger:     logger,
		Updates:    updates,
	}

	var scores []output.Score
	var runErr error
	done := make(chan struct{})
	go func() {
		scores, runErr = competition.Run(cfg)
		close(updates)
		close(done)
	}()
	displayProgress(fmt.Sprintf("competition: %s", filepath.Base(gmPath)), total, updates, useTUI)
	<-done

	if runErr != nil {
		return fmt.Errorf("competition run: %w", runErr)
	}

	outPath := fmt.Sprintf("competition_%s.txt", time.Now().Format("20060102-150405"))
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	if err := output.WriteCompetition(out, mapsFolder, filepath.Base(gmPath), scores); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Println(outPath)
	return nil
}

// displayProgress either runs the bubbletea dashboard or falls back to a
// ticking log.Printf loop (executor/main.go's "temporary replacement for
// TUI" idiom, kept here as the permanent default since headless/CI runs
// want plain output, not an alt-screen program).
func displayProgress(title string, total int, updates chan progress.Event, useTUI bool) {
	if useTUI {
		p := tea.NewProgram(tui.New(title, total, updates))
		if _, err := p.Run(); err != nil {
			log.Printf("%s: tui error: %v", title, err)
		}
		return
	}

	log.Printf("%s: starting (%d task(s))", title, total)
	start := time.Now()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	completed := 0
	for {
		select {
		case ev, ok := <-updates:
			if !ok {
				log.Printf("%s: done in %s", title, time.Since(start).Round(time.Second))
				return
			}
			completed++
			log.Printf("%s: [%d/%d] %s: %s", title, completed, total, ev.Label, ev.Summary)
		case <-ticker.C:
			log.Printf("%s: %d/%d complete, elapsed %s", title, completed, total, time.Since(start).Round(time.Second))
		}
	}
}

// parseKV turns the positional, non-dash arguments left over after
// flag.Parse into a key=value map; each token is split at its first '='
// (the value may itself contain '='), must have at least one character
// on each side of it, and keys must be unique.
func parseKV(args []string) (map[string]string, error) {
	kv := make(map[string]string, len(args))
	for _, a := range args {
		i := strings.IndexByte(a, '=')
		if i <= 0 || i == len(a)-1 {
			return nil, fmt.Errorf("unsupported argument: %s", a)
		}
		key := strings.TrimSpace(a[:i])
		val := strings.TrimSpace(a[i+1:])
		if _, dup := kv[key]; dup {
			return nil, fmt.Errorf("duplicate argument: %s", key)
		}
		kv[key] = val
	}
	return kv, nil
}

func readNumThreads(kv map[string]string) (int, error) {
	v, ok := kv["num_threads"]
	if !ok {
		return 1, nil
	}
	if v == "" {
		return 0, fmt.Errorf("invalid value for num_threads: %q", v)
	}
	for _, c := range v {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid value for num_threads: %q", v)
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid value for num_threads: %q", v)
	}
	return n, nil
}

func requireKeys(kv map[string]string, keys []string) error {
	var missing []string
	for _, k := range keys {
		if _, ok := kv[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required argument(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

func rejectUnknownKeys(kv map[string]string, valid []string) error {
	allowed := make(map[string]bool, len(valid))
	for _, k := range valid {
		allowed[k] = true
	}
	var unknown []string
	for k := range kv {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unsupported argument(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}

func isReadableFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}

func isNonEmptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}

// buildLogger wires recoverable-error notes (map warnings, plugin load
// failures) through a slog.Logger backed by logging.PrettyJSONHandler.
// Logging is disabled (writes to io.Discard) unless -logger names a file,
// per this CLI's simplification of the hybrid "-logger[=<path>]" switch —
// see DESIGN.md.
func buildLogger(loggerPath string, verbose, debug bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closer := func() {}
	if loggerPath != "" {
		f, err := os.OpenFile(loggerPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Printf("could not open log file %s: %v; logging disabled", loggerPath, err)
		} else {
			w = f
			closer = func() { f.Close() }
		}
	}

	handler := logging.NewPrettyJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: debug})
	return slog.New(handler), closer
}
