package blockmapping

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	protocol112 = 361
	protocol113 = 388
)

func testRegistry(t testing.TB) *Registry {
	t.Helper()
	old := testSource()
	old.Properties = nil
	r, err := NewRegistry([]EpochSource{
		{Epoch: Epoch{Name: "1.13", Protocol: protocol113}, Palette: PaletteNBT, Source: testSource()},
		{Epoch: Epoch{Name: "1.12", Protocol: protocol112}, Palette: PaletteLegacyList, Source: old},
	}, Options{Seed: testSeed})
	require.NoError(t, err)
	return r
}

func TestResolve(t *testing.T) {
	r := testRegistry(t)
	require.Equal(t, []Epoch{{"1.12", protocol112}, {"1.13", protocol113}}, r.Epochs())

	for protocol, want := range map[int32]string{
		0:               "1.12",
		protocol112:     "1.12",
		protocol113 - 1: "1.12",
		protocol113:     "1.13",
		protocol113 + 1: "1.13",
		1 << 30:         "1.13",
	} {
		require.Equal(t, want, r.Resolve(protocol).Epoch().Name, "protocol %d", protocol)
	}
}

func TestRegistryStoneScenario(t *testing.T) {
	r := testRegistry(t)
	for _, protocol := range []int32{protocol112, protocol113} {
		rid := r.ToRuntimeID(1, 1, protocol)
		id, meta, err := r.FromRuntimeID(rid, protocol)
		require.NoError(t, err)
		require.Equal(t, 1, id)
		require.Equal(t, 1, meta)
	}
}

func TestRegistrySentinelZero(t *testing.T) {
	zero := 0
	r, err := NewRegistry([]EpochSource{
		{Epoch: Epoch{Name: "1.13", Protocol: protocol113}, Palette: PaletteNBT, Source: testSource()},
	}, Options{Seed: testSeed, Sentinel: &zero})
	require.NoError(t, err)

	air, ok := r.Resolve(protocol113).RuntimeID(0, 0)
	require.True(t, ok)
	require.Equal(t, air, r.ToRuntimeID(999999, 3, protocol113))
}

func TestRegistryUnknownIDGivesSentinel(t *testing.T) {
	r := testRegistry(t)
	sentinel, ok := r.Resolve(protocol113).RuntimeID(DefaultSentinel, 0)
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		require.Equal(t, sentinel, r.ToRuntimeID(999999, 3, protocol113))
	}
}

func TestRegistryUnknownRuntimeID(t *testing.T) {
	r := testRegistry(t)
	_, _, err := r.FromRuntimeID(12, protocol113)
	require.ErrorIs(t, err, ErrUnknownRuntimeID)

	for rid, s := range r.KnownStates(protocol113) {
		if s.Mappable() {
			continue
		}
		_, _, err := r.FromRuntimeID(uint32(rid), protocol113)
		require.ErrorIs(t, err, ErrUnknownRuntimeID)
	}
}

func TestKnownStatesIsACopy(t *testing.T) {
	r := testRegistry(t)
	states := r.KnownStates(protocol113)
	orig := r.Resolve(protocol113).States()
	require.Len(t, states, len(orig))
	for i, s := range states {
		require.Equal(t, orig[i].Name, s.Name)
		require.Equal(t, orig[i].LegacyID, s.LegacyID)
		require.Equal(t, orig[i].Meta, s.Meta)
		require.Len(t, s.Properties, len(orig[i].Properties))
		for j, p := range s.Properties {
			require.Equal(t, orig[i].Properties[j], p)
		}
	}

	for i := range states {
		states[i].Name = "minecraft:changed"
		for j := range states[i].Properties {
			states[i].Properties[j].Name = "changed"
		}
	}
	for _, s := range r.Resolve(protocol113).States() {
		require.NotEqual(t, "minecraft:changed", s.Name)
		for _, p := range s.Properties {
			require.NotEqual(t, "changed", p.Name)
		}
	}
}

func TestSerializedPaletteStable(t *testing.T) {
	r := testRegistry(t)
	for _, protocol := range []int32{protocol112, protocol113} {
		a, err := r.SerializedPalette(protocol)
		require.NoError(t, err)
		b, err := r.SerializedPalette(protocol)
		require.NoError(t, err)
		require.True(t, bytes.Equal(a, b))
	}
	a, _ := r.SerializedPalette(protocol112)
	b, _ := r.SerializedPalette(protocol113)
	require.False(t, bytes.Equal(a, b))
}

func TestRegistryErrors(t *testing.T) {
	_, err := NewRegistry(nil, Options{})
	require.ErrorIs(t, err, ErrNoEpochs)

	_, err = NewRegistry([]EpochSource{
		{Epoch: Epoch{Name: "a", Protocol: protocol113}, Source: testSource()},
		{Epoch: Epoch{Name: "b", Protocol: protocol113}, Source: testSource()},
	}, Options{})
	require.ErrorIs(t, err, ErrDuplicateEpoch)

	broken := testSource()
	delete(broken.LegacyIDs, "minecraft:stone")
	_, err = NewRegistry([]EpochSource{
		{Epoch: Epoch{Name: "ok", Protocol: protocol112}, Source: testSource()},
		{Epoch: Epoch{Name: "broken", Protocol: protocol113}, Source: broken},
	}, Options{})
	require.ErrorIs(t, err, ErrUnknownLegacyName)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "broken", cerr.Epoch)
}

func TestWarmPalettes(t *testing.T) {
	r, err := NewRegistry([]EpochSource{
		{Epoch: Epoch{Name: "1.13", Protocol: protocol113}, Source: testSource()},
	}, Options{Seed: testSeed, WarmPalettes: true})
	require.NoError(t, err)
	require.NotNil(t, r.Resolve(protocol113).palette.Load())
}

func BenchmarkToRuntimeID(b *testing.B) {
	r := testRegistry(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.ToRuntimeID(35, i&MaxMeta, protocol113)
	}
}

func BenchmarkFromRuntimeID(b *testing.B) {
	r := testRegistry(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = r.FromRuntimeID(uint32(i%12), protocol113)
	}
}
