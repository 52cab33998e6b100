package main

import "testing"

func TestParseKVAcceptsKeyValueTokens(t *testing.T) {
	kv, err := parseKV([]string{"game_map=maps/a.map", "num_threads=4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kv["game_map"] != "maps/a.map" || kv["num_threads"] != "4" {
		t.Fatalf("unexpected kv: %v", kv)
	}
}

func TestParseKVRejectsTokenWithoutEquals(t *testing.T) {
	if _, err := parseKV([]string{"game_map"}); err == nil {
		t.Fatalf("expected an error for a token with no '='")
	}
}

func TestParseKVRejectsDuplicateKeys(t *testing.T) {
	if _, err := parseKV([]string{"game_map=a.map", "game_map=b.map"}); err == nil {
		t.Fatalf("expected an error for a duplicate key")
	}
}

func TestReadNumThreadsDefaultsToOne(t *testing.T) {
	n, err := readNumThreads(map[string]string{})
	if err != nil || n != 1 {
		t.Fatalf("expected default of 1, got %d, err=%v", n, err)
	}
}

func TestReadNumThreadsRejectsZeroAndNegative(t *testing.T) {
	if _, err := readNumThreads(map[string]string{"num_threads": "0"}); err == nil {
		t.Fatalf("expected an error for num_threads=0")
	}
	if _, err := readNumThreads(map[string]string{"num_threads": "-1"}); err == nil {
		t.Fatalf("expected an error for a negative num_threads")
	}
}

func TestReadNumThreadsRejectsNonDigits(t *testing.T) {
	if _, err := readNumThreads(map[string]string{"num_threads": "4x"}); err == nil {
		t.Fatalf("expected an error for a non-digit num_threads")
	}
}

func TestRequireKeysReportsAllMissing(t *testing.T) {
	err := requireKeys(map[string]string{"a": "1"}, []string{"a", "b", "c"})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "missing required argument(s): b, c" {
		t.Fatalf("expected both missing keys to be reported, got %q", err.Error())
	}
}

func TestRejectUnknownKeysFlagsExtras(t *testing.T) {
	err := rejectUnknownKeys(map[string]string{"a": "1", "z": "2"}, []string{"a"})
	if err == nil {
		t.Fatalf("expected an error for unknown key z")
	}
}

func TestRejectUnknownKeysAcceptsExactSet(t *testing.T) {
	err := rejectUnknownKeys(map[string]string{"a": "1", "b": "2"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
