//go:build linux

package pluginhost

import (
	"fmt"
	"plugin"

	"github.com/tanktourney/tanktourney/registry"
)

// SOLoader loads real .so plugins built with `go build -buildmode=plugin`,
// the closest Go equivalent to the source's dlopen-based plugin model.
type SOLoader struct{}

func (SOLoader) open(path string) (registerFunc, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pluginhost: open %s: %w", path, err)
	}
	sym, err := p.Lookup("Register")
	if err != nil {
		return nil, fmt.Errorf("pluginhost: %s missing Register symbol: %w", path, err)
	}
	register, ok := sym.(func(*registry.Registry))
	if !ok {
		return nil, fmt.Errorf("pluginhost: %s exports Register with the wrong signature", path)
	}
	return register, nil
}

func (l SOLoader) LoadAlgorithm(path, name string, reg *registry.Registry) (*Handle, error) {
	register, err := l.open(path)
	if err != nil {
		return nil, err
	}
	return loadTransaction(reg, path, name, register, func() error { return validateAlgorithm(reg) })
}

func (l SOLoader) LoadGameManager(path, name string, reg *registry.Registry) (*Handle, error) {
	register, err := l.open(path)
	if err != nil {
		return nil, err
	}
	return loadTransaction(reg, path, name, register, func() error { return validateGM(reg) })
}

// Unload erases the registry entry. plugin.Plugin has no Close/dlclose
// equivalent, so the loaded code stays mapped for the life of the
// process; only the logical registration goes away.
func (SOLoader) Unload(h *Handle, reg *registry.Registry) {
	reg.EraseByName(h.Name)
}
