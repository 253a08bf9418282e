// Package blockmapping translates legacy block ids and meta values to the
// runtime ids of a protocol epoch and builds the block palette sent to clients.
package blockmapping

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// DefaultSentinel is the legacy id of the info_update block, returned for
// legacy ids that have no runtime id.
const DefaultSentinel = 248

// EpochSource is everything needed to build the table of one epoch.
type EpochSource struct {
	Epoch   Epoch
	Palette PaletteStrategy
	Source  Source
}

type Options struct {
	// Seed orders the state tables. Processes that must agree on runtime
	// ids have to use the same seed.
	Seed int64
	// Sentinel is the legacy id used when nothing else matches, nil means
	// DefaultSentinel.
	Sentinel *int
	// WarmPalettes encodes every palette while building the registry.
	WarmPalettes bool
}

// Registry holds one table per epoch. It is immutable once built and safe
// for concurrent use.
type Registry struct {
	tables []*Table // ascending by protocol
}

// NewRegistry builds the tables of all epochs. It fails if any epoch can not
// be built, a partially built registry is never returned.
func NewRegistry(sources []EpochSource, opts Options) (*Registry, error) {
	if len(sources) == 0 {
		return nil, ErrNoEpochs
	}
	sentinel := DefaultSentinel
	if opts.Sentinel != nil {
		sentinel = *opts.Sentinel
	}

	r := &Registry{tables: make([]*Table, 0, len(sources))}
	for _, src := range sources {
		for _, t := range r.tables {
			if t.epoch.Protocol == src.Epoch.Protocol || t.epoch.Name == src.Epoch.Name {
				return nil, &ConfigError{Epoch: src.Epoch.Name, Err: fmt.Errorf("%w: %s", ErrDuplicateEpoch, t.epoch)}
			}
		}
		t, err := Build(TableConfig{
			Epoch:    src.Epoch,
			Palette:  src.Palette,
			Seed:     opts.Seed,
			Sentinel: sentinel,
		}, src.Source)
		if err != nil {
			return nil, &ConfigError{Epoch: src.Epoch.Name, Err: err}
		}
		if opts.WarmPalettes {
			if _, err := t.Palette(); err != nil {
				logrus.Warnf("%s: %v, retrying on first request", t.epoch, err)
			}
		}
		logrus.Infof("Built block table %s: %d states, %d without legacy id, palette %s",
			t.epoch, t.Len(), t.Skipped(), t.strategy)
		r.tables = append(r.tables, t)
	}
	slices.SortFunc(r.tables, func(a, b *Table) bool {
		return a.epoch.Protocol < b.epoch.Protocol
	})
	return r, nil
}

// Resolve returns the table of the newest epoch whose protocol is at or
// below protocol. Versions older than every epoch get the oldest one.
func (r *Registry) Resolve(protocol int32) *Table {
	for i := len(r.tables) - 1; i > 0; i-- {
		if protocol >= r.tables[i].epoch.Protocol {
			return r.tables[i]
		}
	}
	return r.tables[0]
}

// Epochs lists the epochs of the registry, oldest first.
func (r *Registry) Epochs() []Epoch {
	epochs := make([]Epoch, len(r.tables))
	for i, t := range r.tables {
		epochs[i] = t.epoch
	}
	return epochs
}

// ToRuntimeID returns the runtime id of a legacy block for a protocol
// version. Unknown meta values fall back to meta 0, unknown ids to the
// sentinel block.
func (r *Registry) ToRuntimeID(id, meta int, protocol int32) uint32 {
	return r.Resolve(protocol).ToRuntimeID(id, meta)
}

// FromRuntimeID returns the legacy id and meta of a runtime id. Runtime ids
// only come from the same table, so an unknown one means a broken packet.
func (r *Registry) FromRuntimeID(rid uint32, protocol int32) (id, meta int, err error) {
	t := r.Resolve(protocol)
	id, meta, ok := t.Legacy(rid)
	if !ok {
		return 0, 0, fmt.Errorf("%w %d in %s", ErrUnknownRuntimeID, rid, t.epoch)
	}
	return id, meta, nil
}

// KnownStates returns a copy of the ordered state table for a protocol
// version. The index of a state is its runtime id.
func (r *Registry) KnownStates(protocol int32) []BlockState {
	var states []BlockState
	if err := copier.CopyWithOption(&states, r.Resolve(protocol).States(), copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched types.
		panic(err)
	}
	return states
}

// SerializedPalette returns the palette clients of protocol need to decode
// runtime ids. It is encoded at most once per epoch.
func (r *Registry) SerializedPalette(protocol int32) ([]byte, error) {
	return r.Resolve(protocol).Palette()
}
