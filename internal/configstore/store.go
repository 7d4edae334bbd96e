// Package configstore implements the persisted-state protocol: four
// logical keys under a "shift-schedule-" prefix plus a schema-version key,
// with deep-merge-on-read so additive schema changes don't require a
// migration for every reader. Backed by a Postgres store for production and
// a sync.RWMutex-guarded map for tests, using opaque JSON documents rather
// than fixed-shape rows since nothing here needs more than deep-merge
// semantics.
package configstore

import (
	"encoding/json"
	"fmt"
)

// Key identifies one of the four logical state slices the product stores,
// plus the schema-version marker.
type Key string

const (
	KeyStaff          Key = "shift-schedule-staff"
	KeySchedule       Key = "shift-schedule-schedule"
	KeyConfig         Key = "shift-schedule-config"
	KeyPreviousPeriod Key = "shift-schedule-previous-period"
	KeySchemaVersion  Key = "shift-schedule-schema-version"
)

// CurrentSchemaVersion is the schema version this build writes and expects.
// Bumping it is how the owner signals that ClearDependentKeys should run
// against stale stores.
const CurrentSchemaVersion = 1

// Backend is the minimal persistence contract a Store needs: raw
// get/put of a JSON document by key; Get reports a cold read by returning
// false (with a nil error) rather than an error.
// Both the Postgres and in-memory implementations satisfy this directly;
// Store layers the deep-merge and schema-version logic on top.
type Backend interface {
	Get(key Key) (json.RawMessage, bool, error)
	Put(key Key, value json.RawMessage) error
}

// Store is the deep-merge-on-read, schema-versioned façade over a Backend.
// It is the single owner of the persisted configuration/store: every
// mutation goes through Put, and every read goes through Get, which applies
// the defaults-then-stored merge.
type Store struct {
	backend Backend
}

// New wraps backend in a Store.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get deep-merges the stored document for key over defaults (a JSON value
// of the same shape the caller expects back) and unmarshals the result
// into out. Keys absent from storage take their value entirely from
// defaults; keys present in storage but absent from defaults are kept.
func (s *Store) Get(key Key, defaults any, out any) error {
	defaultsRaw, err := json.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("configstore: marshal defaults for %s: %w", key, err)
	}

	stored, found, err := s.backend.Get(key)
	if err != nil {
		return fmt.Errorf("configstore: read %s: %w", key, err)
	}
	if !found {
		return json.Unmarshal(defaultsRaw, out)
	}

	merged, err := deepMergeJSON(defaultsRaw, stored)
	if err != nil {
		return fmt.Errorf("configstore: merge %s: %w", key, err)
	}
	return json.Unmarshal(merged, out)
}

// Put marshals value and writes it back in full under key: Put never
// partial-patches.
func (s *Store) Put(key Key, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("configstore: marshal %s: %w", key, err)
	}
	return s.backend.Put(key, raw)
}

// SchemaVersion returns the stored schema version, or 0 if none has ever
// been written.
func (s *Store) SchemaVersion() (int, error) {
	raw, found, err := s.backend.Get(KeySchemaVersion)
	if err != nil {
		return 0, fmt.Errorf("configstore: read schema version: %w", err)
	}
	if !found {
		return 0, nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("configstore: decode schema version: %w", err)
	}
	return v, nil
}

// ClearDependentKeys implements the "on a version bump, clear dependent
// keys and rewrite config with obsolete fields stripped" policy: it deletes
// every key in keys (typically the keys whose shape changed) and then bumps
// the stored schema version to CurrentSchemaVersion.
func (s *Store) ClearDependentKeys(keys ...Key) error {
	for _, k := range keys {
		if err := s.backend.Put(k, nil); err != nil {
			return fmt.Errorf("configstore: clear %s: %w", k, err)
		}
	}
	versionRaw, err := json.Marshal(CurrentSchemaVersion)
	if err != nil {
		return fmt.Errorf("configstore: marshal schema version: %w", err)
	}
	return s.backend.Put(KeySchemaVersion, versionRaw)
}

// deepMergeJSON merges patch over base, recursing into JSON objects and
// otherwise letting patch win. Arrays and scalars are replaced wholesale,
// consistent with treating slices elsewhere in this domain as owned units
// rather than element-wise-mergeable (see entity.Schedule.Assignments).
func deepMergeJSON(base, patch json.RawMessage) (json.RawMessage, error) {
	var baseVal, patchVal any
	if err := json.Unmarshal(base, &baseVal); err != nil {
		return nil, err
	}
	if len(patch) == 0 || string(patch) == "null" {
		return base, nil
	}
	if err := json.Unmarshal(patch, &patchVal); err != nil {
		return nil, err
	}

	merged := deepMergeValue(baseVal, patchVal)
	return json.Marshal(merged)
}

func deepMergeValue(base, patch any) any {
	baseMap, baseIsMap := base.(map[string]any)
	patchMap, patchIsMap := patch.(map[string]any)
	if !baseIsMap || !patchIsMap {
		return patch
	}

	out := make(map[string]any, len(baseMap))
	for k, v := range baseMap {
		out[k] = v
	}
	for k, patchChild := range patchMap {
		if baseChild, ok := out[k]; ok {
			out[k] = deepMergeValue(baseChild, patchChild)
		} else {
			out[k] = patchChild
		}
	}
	return out
}
