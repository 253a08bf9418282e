package blockmapping

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// Verify checks the invariants of the table: every mappable runtime id
// translates back and forth to itself, wide meta states have no legacy key,
// the sentinel is mapped and the palette is stable and complete. It returns
// every problem found.
func (t *Table) Verify() []error {
	var errs []error
	fail := func(format string, a ...any) {
		errs = append(errs, fmt.Errorf("%s: "+format, append([]any{t.epoch}, a...)...))
	}

	if len(t.runtimeToLegacy) != len(t.states) {
		fail("%d runtime ids but %d states", len(t.runtimeToLegacy), len(t.states))
	}
	var skipped int
	for i, s := range t.states {
		rid := uint32(i)
		id, meta, ok := t.Legacy(rid)
		if !s.Mappable() {
			skipped++
			if ok {
				fail("runtime id %d (%s) has legacy key %d:%d", rid, s, id, meta)
			}
			continue
		}
		if !ok {
			fail("runtime id %d (%s) has no legacy key", rid, s)
			continue
		}
		if id != s.LegacyID || meta != s.Meta {
			fail("runtime id %d (%s) maps to %d:%d", rid, s, id, meta)
		}
		back, ok := t.RuntimeID(id, meta)
		if !ok {
			fail("%d:%d has no runtime id", id, meta)
		} else if k, _ := t.legacyKey(back); k != Key(id, meta) {
			fail("%d:%d maps to runtime id %d of %s", id, meta, back, t.states[back])
		}
	}
	if skipped != t.skipped {
		fail("%d wide meta states, %d counted", skipped, t.skipped)
	}
	for k, rid := range t.legacyToRuntime {
		if back, ok := t.legacyKey(rid); !ok || back != k {
			fail("legacy key %d:%d maps to runtime id %d, which maps to %d", k.ID(), k.Meta(), rid, back)
		}
	}
	if _, _, ok := t.Legacy(t.sentinel); !ok {
		fail("sentinel runtime id %d has no legacy key", t.sentinel)
	}

	a, err := t.Palette()
	if err != nil {
		return append(errs, err)
	}
	b, err := t.Palette()
	if err != nil {
		return append(errs, err)
	}
	if !bytes.Equal(a, b) {
		fail("palette changed between two requests")
	}
	if n, ok, err := paletteCount(t.strategy, t.precomputed, a); err != nil {
		fail("decode palette: %v", err)
	} else if ok && n != len(t.states) {
		fail("palette holds %d states, table %d", n, len(t.states))
	}
	return errs
}

func (t *Table) legacyKey(rid uint32) (LegacyKey, bool) {
	if uint64(rid) >= uint64(len(t.runtimeToLegacy)) || t.runtimeToLegacy[rid] == noLegacy {
		return noLegacy, false
	}
	return t.runtimeToLegacy[rid], true
}

// paletteCount returns the number of states in an encoded palette. ok is
// false for precomputed palettes, their content is not ours to check.
func paletteCount(strategy PaletteStrategy, precomputed bool, data []byte) (n int, ok bool, err error) {
	if precomputed {
		return 0, false, nil
	}
	if strategy == PaletteLegacyList {
		count, err := binary.ReadUvarint(bytes.NewReader(data))
		return int(count), true, err
	}
	var entries []map[string]any
	if err := nbt.UnmarshalEncoding(data, &entries, nbt.LittleEndian); err != nil {
		return 0, true, err
	}
	return len(entries), true, nil
}
