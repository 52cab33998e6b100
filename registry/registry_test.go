package registry

import (
	"testing"

	"github.com/tanktourney/tanktourney/engine"
)

func dummyPlayerFactory(int, int, int, int, int) engine.Player { return nil }
func dummyTankFactory(int, int) engine.TankAlgorithm           { return nil }
func dummyGMFactory() engine.GameManager                       { return nil }

func TestValidateLastAlgorithmSucceedsWhenComplete(t *testing.T) {
	r := New()
	r.CreateEntry("greedy")
	r.SetPlayerFactory(dummyPlayerFactory)
	r.SetTankFactory(dummyTankFactory)

	if err := r.ValidateLastAlgorithm(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateLastAlgorithmFailsWhenTankFactoryMissing(t *testing.T) {
	r := New()
	r.CreateEntry("half-registered")
	r.SetPlayerFactory(dummyPlayerFactory)

	err := r.ValidateLastAlgorithm()
	if err == nil {
		t.Fatalf("expected an error for a missing tank factory")
	}
	bad, ok := err.(*BadRegistrationError)
	if !ok {
		t.Fatalf("expected a *BadRegistrationError, got %T", err)
	}
	if bad.HasPlayerFactory != true || bad.HasTankFactory != false {
		t.Fatalf("unexpected error detail: %+v", bad)
	}
}

func TestRemoveLastRollsBackFailedRegistration(t *testing.T) {
	r := New()
	r.CreateEntry("incomplete")
	if err := r.ValidateLastAlgorithm(); err == nil {
		t.Fatalf("expected validation to fail before rollback")
	}
	r.RemoveLast()

	if r.Count() != 0 {
		t.Fatalf("expected the rolled-back entry to be gone, got count %d", r.Count())
	}
}

func TestEraseByNameRemovesMatchingEntries(t *testing.T) {
	r := New()
	r.CreateEntry("a")
	r.SetGMFactory(dummyGMFactory)
	r.CreateEntry("b")
	r.SetGMFactory(dummyGMFactory)
	r.CreateEntry("a")
	r.SetGMFactory(dummyGMFactory)

	r.EraseByName("a")

	if r.Count() != 1 {
		t.Fatalf("expected only entry b to remain, got %d entries", r.Count())
	}
	if _, ok := r.ByName("a"); ok {
		t.Fatalf("expected entry a to be erased")
	}
}

func TestValidateLastGMFailsWithoutFactory(t *testing.T) {
	r := New()
	r.CreateEntry("bare")
	if err := r.ValidateLastGM(); err == nil {
		t.Fatalf("expected an error for a missing GM factory")
	}
}

func TestCreateEntryAssignsDistinctInstanceIDs(t *testing.T) {
	r := New()
	r.CreateEntry("one")
	r.CreateEntry("two")

	entries := r.All()
	if entries[0].InstanceID == entries[1].InstanceID {
		t.Fatalf("expected distinct instance IDs for distinct registrations")
	}
}
