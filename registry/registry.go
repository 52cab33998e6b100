// Package registry implements the plugin registrar (C9): a mutex-
// guarded, name-keyed table of factory triples, grounded on
// original_source/Simulator/sim_include/AlgorithmRegistrar.h and
// GameManagerRegistrar.h. spec.md §9 reframes the source's dlopen-based
// plugin as a plain value triple (name, player_factory, tank_factory)
// or (name, gm_factory); this package holds that table rather than any
// dynamic-loading mechanism, which lives in the pluginhost package.
package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tanktourney/tanktourney/engine"
)

// Entry is one registrar row. An algorithm entry carries Player and
// TankFactory; a game-manager entry carries GMFactory. A single named
// plugin is never both in this design — the orchestrators look up
// algorithm entries and GM entries through separate calls.
//
// InstanceID identifies this registration for log correlation across
// loader threads — the source identifies a GM/Algorithm pair by its
// dlopen handle pointer, which has no Go analogue worth keeping.
type Entry struct {
	Name        string
	InstanceID  uuid.UUID
	Player      engine.PlayerFactory
	TankFactory engine.TankAlgorithmFactory
	GMFactory   engine.GameManagerFactory
}

func (e *Entry) hasPlayerFactory() bool { return e.Player != nil }
func (e *Entry) hasTankFactory() bool   { return e.TankFactory != nil }
func (e *Entry) hasGMFactory() bool     { return e.GMFactory != nil }

// BadRegistrationError reports a partially-populated entry caught at
// ValidateLastAlgorithm, mirroring AlgorithmRegistrar.h's BadRegistrationException.
type BadRegistrationError struct {
	Name             string
	HasName          bool
	HasPlayerFactory bool
	HasTankFactory   bool
}

func (e *BadRegistrationError) Error() string {
	return fmt.Sprintf("registry: incomplete registration for %q (name=%v player=%v tank=%v)",
		e.Name, e.HasName, e.HasPlayerFactory, e.HasTankFactory)
}

// Registry is the shared, mutex-guarded plugin table. A loader thread
// calls CreateEntry, then one or more SetXFactory calls, then
// ValidateLastAlgorithm or ValidateLastGM; any failure should be
// followed by RemoveLast.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty Registry.
func New() *Registry { return &Registry{} }

// CreateEntry appends a new, empty entry under name.
func (r *Registry) CreateEntry(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Name: name, InstanceID: uuid.New()})
}

// SetPlayerFactory sets the player factory on the most recently created
// entry. It is a programming error to call it twice on the same entry.
func (r *Registry) SetPlayerFactory(f engine.PlayerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := &r.entries[len(r.entries)-1]
	if last.hasPlayerFactory() {
		panic("registry: player factory already set for " + last.Name)
	}
	last.Player = f
}

// SetTankFactory sets the tank-algorithm factory on the most recently
// created entry.
func (r *Registry) SetTankFactory(f engine.TankAlgorithmFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := &r.entries[len(r.entries)-1]
	if last.hasTankFactory() {
		panic("registry: tank factory already set for " + last.Name)
	}
	last.TankFactory = f
}

// SetGMFactory sets the game-manager factory on the most recently
// created entry.
func (r *Registry) SetGMFactory(f engine.GameManagerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := &r.entries[len(r.entries)-1]
	if last.hasGMFactory() {
		panic("registry: GM factory already set for " + last.Name)
	}
	last.GMFactory = f
}

// ValidateLastAlgorithm fails unless the most recent entry has a name,
// a player factory, and a tank factory.
func (r *Registry) ValidateLastAlgorithm() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := r.entries[len(r.entries)-1]
	if last.Name == "" || !last.hasPlayerFactory() || !last.hasTankFactory() {
		return &BadRegistrationError{
			Name:             last.Name,
			HasName:          last.Name != "",
			HasPlayerFactory: last.hasPlayerFactory(),
			HasTankFactory:   last.hasTankFactory(),
		}
	}
	return nil
}

// ValidateLastGM fails unless the most recent entry has a name and a
// GM factory.
func (r *Registry) ValidateLastGM() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := r.entries[len(r.entries)-1]
	if last.Name == "" || !last.hasGMFactory() {
		return fmt.Errorf("registry: missing game-manager factory for %q", last.Name)
	}
	return nil
}

// RemoveLast drops the most recently created entry, for rolling back a
// failed registration transaction.
func (r *Registry) RemoveLast() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:len(r.entries)-1]
}

// EraseByName removes every entry with the given name.
func (r *Registry) EraseByName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

// ByName returns the entry registered under name, if any.
func (r *Registry) ByName(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// All returns a snapshot of every registered entry, in registration
// order.
func (r *Registry) All() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of registered entries.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Clear empties the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
