package blockmapping

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Epoch is a protocol baseline with its own mapping table. Protocol is the
// lowest protocol version served by the epoch.
type Epoch struct {
	Name     string
	Protocol int32
}

func (e Epoch) String() string {
	return fmt.Sprintf("%s (%d)", e.Name, e.Protocol)
}

// Table maps legacy ids of one epoch to runtime ids and back. The runtime id
// of a state is its position in the shuffled state table. A Table never
// changes after Build, apart from the palette cache.
type Table struct {
	epoch    Epoch
	strategy PaletteStrategy

	states          []BlockState
	legacyToRuntime map[LegacyKey]uint32
	runtimeToLegacy []LegacyKey
	skipped         int
	sentinel        uint32
	precomputed     bool

	paletteMu sync.Mutex
	palette   atomic.Pointer[[]byte]
}

// TableConfig holds what Build needs besides the parsed source.
type TableConfig struct {
	Epoch    Epoch
	Palette  PaletteStrategy
	Seed     int64
	Sentinel int
}

// Build loads, shuffles and maps the states of src.
func Build(conf TableConfig, src Source) (*Table, error) {
	states, err := Decompress(src)
	if err != nil {
		return nil, err
	}
	t := newTable(conf.Epoch, conf.Palette, Shuffle(states, conf.Seed))

	rid, ok := t.RuntimeID(conf.Sentinel, 0)
	if !ok {
		return nil, fmt.Errorf("%w: legacy id %d", ErrMissingSentinel, conf.Sentinel)
	}
	t.sentinel = rid

	if conf.Palette == PaletteBlob {
		if len(src.Blob) > 0 {
			blob := src.Blob
			t.palette.Store(&blob)
			t.precomputed = true
		} else {
			logrus.Warnf("%s: precomputed palette is empty, encoding from the state table instead", t.epoch)
		}
	}
	return t, nil
}

func newTable(epoch Epoch, strategy PaletteStrategy, states []BlockState) *Table {
	t := &Table{
		epoch:           epoch,
		strategy:        strategy,
		states:          states,
		legacyToRuntime: make(map[LegacyKey]uint32, len(states)),
		runtimeToLegacy: make([]LegacyKey, len(states)),
	}
	for i, s := range states {
		rid := uint32(i)
		if !s.Mappable() {
			// Keeps its runtime id so the palette matches the ids on the
			// network, but has no legacy key.
			logrus.Tracef("%s: skipping %s, meta does not fit in 4 bits", epoch, s)
			t.runtimeToLegacy[rid] = noLegacy
			t.skipped++
			continue
		}
		k := Key(s.LegacyID, s.Meta)
		t.runtimeToLegacy[rid] = k
		if prev, ok := t.legacyToRuntime[k]; ok {
			// The last occurrence takes the legacy key.
			logrus.Debugf("%s: %s shares its legacy key with runtime id %d", epoch, s, prev)
		}
		t.legacyToRuntime[k] = rid
	}
	return t
}

func (t *Table) Epoch() Epoch {
	return t.epoch
}

func (t *Table) Strategy() PaletteStrategy {
	return t.strategy
}

// Len returns the number of runtime ids of the table.
func (t *Table) Len() int {
	return len(t.states)
}

// Skipped returns the number of runtime ids without a legacy key.
func (t *Table) Skipped() int {
	return t.skipped
}

// States returns the shuffled state table. The slice is shared and must not
// be modified.
func (t *Table) States() []BlockState {
	return t.states
}

// RuntimeID looks up the exact id and meta pair.
func (t *Table) RuntimeID(id, meta int) (uint32, bool) {
	if meta < 0 || meta > MaxMeta || !ValidLegacyID(id) {
		return 0, false
	}
	rid, ok := t.legacyToRuntime[Key(id, meta)]
	return rid, ok
}

// ToRuntimeID tries id and meta, then id with meta 0, then the sentinel block.
func (t *Table) ToRuntimeID(id, meta int) uint32 {
	if rid, ok := t.RuntimeID(id, meta); ok {
		return rid
	}
	if rid, ok := t.RuntimeID(id, 0); ok {
		return rid
	}
	return t.sentinel
}

// Legacy returns the legacy id and meta of a runtime id.
func (t *Table) Legacy(rid uint32) (id, meta int, ok bool) {
	if uint64(rid) >= uint64(len(t.runtimeToLegacy)) {
		return 0, 0, false
	}
	k := t.runtimeToLegacy[rid]
	if k == noLegacy {
		return 0, 0, false
	}
	return k.ID(), k.Meta(), true
}

// Palette returns the serialized palette, encoding it on first use. The
// returned slice is shared and must not be modified.
func (t *Table) Palette() ([]byte, error) {
	if b := t.palette.Load(); b != nil {
		return *b, nil
	}
	t.paletteMu.Lock()
	defer t.paletteMu.Unlock()
	if b := t.palette.Load(); b != nil {
		return *b, nil
	}

	data, err := EncodePalette(t.strategy, t.states)
	if err != nil {
		return nil, fmt.Errorf("%s: encode palette: %w", t.epoch, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: encode palette: empty result", t.epoch)
	}
	t.palette.Store(&data)
	logrus.Debugf("%s: encoded %s palette, %d bytes", t.epoch, t.strategy, len(data))
	return data, nil
}
