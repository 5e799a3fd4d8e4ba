// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package umi

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
)

// IDSequence hands out entity IDs. It is safe for concurrent use, so
// registries on different goroutines may share one.
type IDSequence struct {
	last atomic.Int64
}

// NewIDSequence returns a sequence whose first ID is 1.
func NewIDSequence() *IDSequence {
	return &IDSequence{}
}

// Next returns the next unused ID.
func (s *IDSequence) Next() int64 {
	return s.last.Add(1)
}

// Last returns the most recently issued ID, or 0 before the first.
// Every entity registered after the call gets a larger ID.
func (s *IDSequence) Last() int64 {
	return s.last.Load()
}

// ZoneWeight selects the zone quantity used as the default weight when
// combining zones and zone settings.
type ZoneWeight string

const (
	ZoneWeightVolume ZoneWeight = "volume"
	ZoneWeightArea   ZoneWeight = "area"
)

// ParseZoneWeight validates a zone weight name. The empty string
// selects volume.
func ParseZoneWeight(name string) (ZoneWeight, error) {
	switch ZoneWeight(name) {
	case "", ZoneWeightVolume:
		return ZoneWeightVolume, nil
	case ZoneWeightArea:
		return ZoneWeightArea, nil
	}
	return "", fmt.Errorf("unknown zone weight %q (want %q or %q)", name, ZoneWeightVolume, ZoneWeightArea)
}

// ZoneHandle refers to a zone in its registry's arena. The zero handle
// refers to no zone.
type ZoneHandle int32

type entityKey struct {
	kind Kind
	name string
}

// Registry is the identity cache: it holds at most one entity per
// (kind, name) and owns the zone arena that settings refer back into.
type Registry struct {
	mu          sync.Mutex
	ids         *IDSequence
	logger      *slog.Logger
	zoneWeight  ZoneWeight
	strictNames bool

	entities map[entityKey]Entity
	byID     map[int64]Entity
	order    map[Kind][]Entity
	zones    []*Zone
}

// Option configures a [Registry].
type Option func(*Registry)

// WithIDSequence makes the registry draw IDs from a shared sequence.
func WithIDSequence(ids *IDSequence) Option {
	return func(r *Registry) { r.ids = ids }
}

// WithLogger sets the logger for warnings raised while building
// entities (substituted constructions, basement surfaces).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithZoneWeight selects the default zone weighting.
func WithZoneWeight(weight ZoneWeight) Option {
	return func(r *Registry) { r.zoneWeight = weight }
}

// WithStrictNames makes registration fail with a [NameCollisionError]
// when a name is reused for a value-different entity.
func WithStrictNames() Option {
	return func(r *Registry) { r.strictNames = true }
}

// NewRegistry returns an empty registry.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		zoneWeight: ZoneWeightVolume,
		entities:   make(map[entityKey]Entity),
		byID:       make(map[int64]Entity),
		order:      make(map[Kind][]Entity),
	}
	for _, option := range options {
		option(r)
	}
	if r.ids == nil {
		r.ids = NewIDSequence()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger { return r.logger }

// ZoneWeight returns the default zone weighting.
func (r *Registry) ZoneWeight() ZoneWeight { return r.zoneWeight }

// register returns the entity already registered under the
// candidate's (kind, name), or registers the candidate and assigns it
// an ID.
func register[T Entity](r *Registry, candidate T) (T, error) {
	meta := candidate.Metadata()
	if meta.Name == "" {
		var zero T
		return zero, fmt.Errorf("%s: %w", candidate.Kind(), ErrEmptyName)
	}
	meta.fillDefaults()

	r.mu.Lock()
	defer r.mu.Unlock()

	key := entityKey{kind: candidate.Kind(), name: meta.Name}
	if existing, ok := r.entities[key]; ok {
		if r.strictNames && !existing.equalEntity(candidate) {
			var zero T
			return zero, &NameCollisionError{Kind: key.kind, Name: key.name}
		}
		return existing.(T), nil
	}

	meta.ID = r.ids.Next()
	r.entities[key] = candidate
	r.byID[meta.ID] = candidate
	r.order[key.kind] = append(r.order[key.kind], candidate)
	if zone, ok := any(candidate).(*Zone); ok {
		r.zones = append(r.zones, zone)
		zone.handle = ZoneHandle(len(r.zones))
	}
	return candidate, nil
}

// registerAlias registers a candidate read from a document. A name
// already taken by a value-different entity is disambiguated with the
// document id instead of being collapsed, so references keep pointing
// at the entity the document described.
func registerAlias[T Entity](r *Registry, candidate T, documentID string) (T, error) {
	registered, err := register(r, candidate)
	if err != nil {
		return registered, err
	}
	if Entity(registered) == Entity(candidate) || registered.equalEntity(candidate) {
		return registered, nil
	}
	meta := candidate.Metadata()
	r.logger.Warn("entity name reused with different values, renaming",
		"kind", candidate.Kind(), "name", meta.Name, "document_id", documentID)
	meta.Name = fmt.Sprintf("%s [%s]", meta.Name, documentID)
	return register(r, candidate)
}

// forget drops an entity from the registry. The zone arena keeps its
// slot so outstanding handles stay valid.
func (r *Registry) forget(e Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta := e.Metadata()
	key := entityKey{kind: e.Kind(), name: meta.Name}
	if r.entities[key] == e {
		delete(r.entities, key)
	}
	if r.byID[meta.ID] == e {
		delete(r.byID, meta.ID)
	}
	r.order[key.kind] = slices.DeleteFunc(r.order[key.kind], func(x Entity) bool { return x == e })
}

// Lookup returns the entity registered under (kind, name).
func (r *Registry) Lookup(kind Kind, name string) (Entity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entities[entityKey{kind: kind, name: name}]
	return e, ok
}

// ByID returns the entity with the given ID.
func (r *Registry) ByID(id int64) (Entity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	return e, ok
}

// All returns the registered entities of a kind in registration order.
func (r *Registry) All(kind Kind) []Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order[kind])
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entities)
}

// Clear drops every registered entity and the zone arena. The ID
// sequence is not reset.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entities)
	clear(r.byID)
	clear(r.order)
	r.zones = nil
}

// RandomSchedule returns a registered year schedule chosen with rng,
// or nil when none is registered.
func (r *Registry) RandomSchedule(rng *rand.Rand) *YearSchedule {
	schedules := r.All(KindYearSchedule)
	if len(schedules) == 0 {
		return nil
	}
	return schedules[rng.IntN(len(schedules))].(*YearSchedule)
}

// Zone resolves a zone handle. It returns nil for the zero handle and
// for handles from a cleared arena.
func (r *Registry) Zone(handle ZoneHandle) *Zone {
	r.mu.Lock()
	defer r.mu.Unlock()
	if handle <= 0 || int(handle) > len(r.zones) {
		return nil
	}
	return r.zones[handle-1]
}

// zoneWeightOf is the default weight a zone contributes to a
// combination.
func (r *Registry) zoneWeightOf(z *Zone) float64 {
	if z == nil {
		return 1
	}
	if r.zoneWeight == ZoneWeightArea {
		return z.Area()
	}
	return z.Volume()
}

// ownerWeights returns the default weights of two zone-owned settings:
// the weight of each owning zone, or equal weights when either has no
// owner.
func (r *Registry) ownerWeights(a, b ZoneHandle) []float64 {
	za, zb := r.Zone(a), r.Zone(b)
	if za == nil || zb == nil {
		return []float64{1, 1}
	}
	return []float64{r.zoneWeightOf(za), r.zoneWeightOf(zb)}
}

// zoneOwned is embedded by settings that belong to a zone.
type zoneOwned struct {
	owner ZoneHandle
}

// Owner returns the handle of the zone the setting belongs to.
func (o *zoneOwned) Owner() ZoneHandle { return o.owner }

func (o *zoneOwned) setOwner(h ZoneHandle) { o.owner = h }
