package pluginhost

import (
	"testing"

	"github.com/tanktourney/tanktourney/engine"
	"github.com/tanktourney/tanktourney/registry"
)

func dummyPlayerFactory(int, int, int, int, int) engine.Player { return nil }
func dummyTankFactory(int, int) engine.TankAlgorithm           { return nil }
func dummyGMFactory() engine.GameManager                       { return nil }

func TestStaticLoaderLoadsCompleteAlgorithm(t *testing.T) {
	reg := registry.New()
	loader := NewStaticLoader()
	loader.RegisterAlgorithm("/plugins/greedy.so", func(r *registry.Registry) {
		r.SetPlayerFactory(dummyPlayerFactory)
		r.SetTankFactory(dummyTankFactory)
	})

	h, err := loader.LoadAlgorithm("/plugins/greedy.so", "greedy", reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Name != "greedy" {
		t.Fatalf("unexpected handle: %+v", h)
	}
	if reg.Count() != 1 {
		t.Fatalf("expected one registry entry, got %d", reg.Count())
	}
}

func TestStaticLoaderRollsBackIncompleteAlgorithm(t *testing.T) {
	reg := registry.New()
	loader := NewStaticLoader()
	loader.RegisterAlgorithm("/plugins/half.so", func(r *registry.Registry) {
		r.SetPlayerFactory(dummyPlayerFactory)
		// tank factory deliberately left unset
	})

	_, err := loader.LoadAlgorithm("/plugins/half.so", "half", reg)
	if err == nil {
		t.Fatalf("expected an error for an incomplete registration")
	}
	if reg.Count() != 0 {
		t.Fatalf("expected the failed entry to be rolled back, got %d entries", reg.Count())
	}
}

func TestStaticLoaderLoadsGameManager(t *testing.T) {
	reg := registry.New()
	loader := NewStaticLoader()
	loader.RegisterGameManager("/plugins/gm.so", func(r *registry.Registry) {
		r.SetGMFactory(dummyGMFactory)
	})

	h, err := loader.LoadGameManager("/plugins/gm.so", "default", reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loader.Unload(h, reg)
	if _, ok := reg.ByName("default"); ok {
		t.Fatalf("expected Unload to erase the registry entry")
	}
}

func TestLoadAlgorithmFailsForUnknownPath(t *testing.T) {
	reg := registry.New()
	loader := NewStaticLoader()

	if _, err := loader.LoadAlgorithm("/plugins/missing.so", "x", reg); err == nil {
		t.Fatalf("expected an error for a path with no registered plugin")
	}
}
