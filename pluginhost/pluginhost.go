// Package pluginhost implements the load/unload half of the plugin
// registrar transaction from spec.md §7: "create_entry → dlopen-equivalent
// → validate_last", with rollback on any failure. It reframes the
// source's dlopen-based plugin (original_source/Simulator/sim_include/
// AlgorithmRegistrar.h) as a Go value: a plugin is a shared object that
// exports a package-level `Register(*registry.Registry)` function,
// which is expected to call SetPlayerFactory/SetTankFactory or
// SetGMFactory on the registry's most recently created entry.
//
// Go's plugin package (linux-only, wired in dlopen_linux.go) has no
// dlclose equivalent — a loaded .so can never be truly unloaded from a
// running process. Unload is therefore a logical operation: it erases
// the registry entry so the name can no longer be scheduled, without
// reclaiming the loaded code. See DESIGN.md.
package pluginhost

import (
	"fmt"
	"path/filepath"

	"github.com/tanktourney/tanktourney/registry"
)

// Handle identifies one successfully loaded plugin.
type Handle struct {
	Path string
	Name string
}

// Loader opens plugin files and registers their factories.
type Loader interface {
	LoadAlgorithm(path, name string, reg *registry.Registry) (*Handle, error)
	LoadGameManager(path, name string, reg *registry.Registry) (*Handle, error)
	Unload(h *Handle, reg *registry.Registry)
}

// CanonicalPath resolves a plugin path to an absolute, symlink-free form
// so the comparative orchestrator can detect "same plugin, two paths"
// per spec.md §4.7 step 2.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("pluginhost: %w", err)
	}
	return filepath.EvalSymlinks(abs)
}

// registerFunc is the symbol every plugin must export.
type registerFunc = func(*registry.Registry)

// loadTransaction runs the create_entry/register/validate sequence
// shared by both the real loader and StaticLoader, rolling the entry
// back on any failure.
func loadTransaction(reg *registry.Registry, path, name string, register registerFunc, validate func() error) (*Handle, error) {
	reg.CreateEntry(name)
	register(reg)
	if err := validate(); err != nil {
		reg.RemoveLast()
		return nil, fmt.Errorf("pluginhost: %s: %w", path, err)
	}
	return &Handle{Path: path, Name: name}, nil
}

// validateAlgorithm and validateGM run the registrar check for the kind
// of plugin that was just registered.
func validateAlgorithm(reg *registry.Registry) error { return reg.ValidateLastAlgorithm() }
func validateGM(reg *registry.Registry) error        { return reg.ValidateLastGM() }

// StaticLoader loads plugins that are already linked into the binary —
// Go values standing in for a dynamically loaded .so, keyed by path.
// This is how tests (and any deployment that prefers static builds over
// runtime loading) supply algorithms and game managers without touching
// the filesystem at all.
type StaticLoader struct {
	algorithms map[string]registerFunc
	gms        map[string]registerFunc
}

// NewStaticLoader builds an empty StaticLoader.
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{algorithms: make(map[string]registerFunc), gms: make(map[string]registerFunc)}
}

// RegisterAlgorithm binds a path to the registration function an
// algorithm plugin at that path would have exported.
func (s *StaticLoader) RegisterAlgorithm(path string, register registerFunc) {
	s.algorithms[path] = register
}

// RegisterGameManager binds a path to the registration function a
// game-manager plugin at that path would have exported.
func (s *StaticLoader) RegisterGameManager(path string, register registerFunc) {
	s.gms[path] = register
}

func (s *StaticLoader) LoadAlgorithm(path, name string, reg *registry.Registry) (*Handle, error) {
	register, ok := s.algorithms[path]
	if !ok {
		return nil, fmt.Errorf("pluginhost: no algorithm registered for %q", path)
	}
	return loadTransaction(reg, path, name, register, func() error { return validateAlgorithm(reg) })
}

func (s *StaticLoader) LoadGameManager(path, name string, reg *registry.Registry) (*Handle, error) {
	register, ok := s.gms[path]
	if !ok {
		return nil, fmt.Errorf("pluginhost: no game manager registered for %q", path)
	}
	return loadTransaction(reg, path, name, register, func() error { return validateGM(reg) })
}

// Unload erases h's registry entry. See the package doc for why this
// cannot reclaim the underlying code.
func (s *StaticLoader) Unload(h *Handle, reg *registry.Registry) {
	reg.EraseByName(h.Name)
}
