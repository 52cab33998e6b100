//go:build !linux

package pluginhost

import (
	"fmt"

	"github.com/tanktourney/tanktourney/registry"
)

// SOLoader is unavailable outside Linux — Go's plugin package only
// supports ELF shared objects. Use StaticLoader for portable builds.
type SOLoader struct{}

func (SOLoader) LoadAlgorithm(path, name string, reg *registry.Registry) (*Handle, error) {
	return nil, fmt.Errorf("pluginhost: .so plugin loading is only supported on linux")
}

func (SOLoader) LoadGameManager(path, name string, reg *registry.Registry) (*Handle, error) {
	return nil, fmt.Errorf("pluginhost: .so plugin loading is only supported on linux")
}

func (SOLoader) Unload(h *Handle, reg *registry.Registry) {}
