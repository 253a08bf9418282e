package resources

import (
	"bytes"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/bedrock-tool/blockmap/utils/blockmapping"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

const legacyIDs = `{
	// comments are allowed
	"minecraft:air": 0,
	"minecraft:stone": 1,
	"minecraft:wool": 35,
	"minecraft:info_update": 248
}`

const states = `{
	"minecraft": {
		"wool": [0, 1, 2],
		"air": [0],
		"stone": [0, 1, 2, 3, 4, 5, 6],
		"info_update": [0]
	}
}`

const properties = `{
	"minecraft:wool": {
		"color": {"type": 8, "value": "white"},
		"dyed_bit": {"type": 1, "value": true},
		"age": {"type": 3, "value": -3},
		"alpha": {"type": 1, "value": 200}
	}
}`

func testFS(t *testing.T) fstest.MapFS {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, err = w.Write([]byte(properties))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return fstest.MapFS{
		"vanilla/block_id_map.json":               {Data: []byte(legacyIDs)},
		"vanilla/required_block_states.json.zst":  {Data: enc.EncodeAll([]byte(states), nil)},
		"vanilla/advanced_block_states.json.gz":   {Data: gz.Bytes()},
		"vanilla/required_block_states_bad.json":  {Data: []byte(`{"minecraft": {"stone": [0, 300]}}`)},
		"vanilla/advanced_block_states_bad.json":  {Data: []byte(`{"minecraft:stone": {"x": {"type": 4, "value": 1}}}`)},
		"vanilla/block_palette.nbt":               {Data: []byte{1, 2, 3}},
		"vanilla/required_block_states_list.json": {Data: []byte(`{"minecraft": ["stone"]}`)},
	}
}

func TestLoad(t *testing.T) {
	l := NewLoader(testFS(t))
	src, err := l.Load("1.13", Files{
		LegacyIDs:  "vanilla/block_id_map.json",
		States:     "vanilla/required_block_states.json.zst",
		Properties: "vanilla/advanced_block_states.json.gz",
		Blob:       "vanilla/block_palette.nbt",
	})
	require.NoError(t, err)

	require.Equal(t, 35, src.LegacyIDs["minecraft:wool"])
	require.Equal(t, []blockmapping.StateGroup{
		{Prefix: "minecraft", ShortID: "wool", Metas: []int{0, 1, 2}},
		{Prefix: "minecraft", ShortID: "air", Metas: []int{0}},
		{Prefix: "minecraft", ShortID: "stone", Metas: []int{0, 1, 2, 3, 4, 5, 6}},
		{Prefix: "minecraft", ShortID: "info_update", Metas: []int{0}},
	}, src.States)
	require.Equal(t, []blockmapping.Property{
		blockmapping.StringProperty("color", "white"),
		blockmapping.ByteProperty("dyed_bit", 1),
		blockmapping.IntProperty("age", -3),
		blockmapping.ByteProperty("alpha", 200),
	}, src.Properties["minecraft:wool"])
	require.Equal(t, []byte{1, 2, 3}, src.Blob)

	states, err := blockmapping.Decompress(src)
	require.NoError(t, err)
	require.Len(t, states, 12)
	require.Equal(t, "minecraft:wool", states[0].Name)
}

func TestLoadOptionalResources(t *testing.T) {
	l := NewLoader(testFS(t))
	src, err := l.Load("1.12", Files{
		LegacyIDs: "vanilla/block_id_map.json",
		States:    "vanilla/required_block_states.json.zst",
		Blob:      "vanilla/missing.nbt",
	})
	require.NoError(t, err)
	require.Nil(t, src.Properties)
	require.Nil(t, src.Blob)
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader(testFS(t))
	for name, files := range map[string]Files{
		"missing file":   {LegacyIDs: "vanilla/nope.json", States: "vanilla/required_block_states.json.zst"},
		"no states":      {LegacyIDs: "vanilla/block_id_map.json"},
		"meta too large": {LegacyIDs: "vanilla/block_id_map.json", States: "vanilla/required_block_states_bad.json"},
		"not an object":  {LegacyIDs: "vanilla/block_id_map.json", States: "vanilla/required_block_states_list.json"},
		"bad tag": {
			LegacyIDs:  "vanilla/block_id_map.json",
			States:     "vanilla/required_block_states.json.zst",
			Properties: "vanilla/advanced_block_states_bad.json",
		},
	} {
		_, err := l.Load("test", files)
		require.Error(t, err, name)

		var cerr *blockmapping.ConfigError
		require.True(t, errors.As(err, &cerr), name)
		require.Equal(t, "test", cerr.Epoch)
	}
}

func TestPropertyDefinitions(t *testing.T) {
	for _, tc := range []struct {
		def  propertyDef
		want blockmapping.Property
		ok   bool
	}{
		{propertyDef{blockmapping.TagByte, []byte("-1")}, blockmapping.ByteProperty("p", 255), true},
		{propertyDef{blockmapping.TagByte, []byte("false")}, blockmapping.ByteProperty("p", 0), true},
		{propertyDef{blockmapping.TagByte, []byte("256")}, blockmapping.Property{}, false},
		{propertyDef{blockmapping.TagInt, []byte("2147483647")}, blockmapping.IntProperty("p", 2147483647), true},
		{propertyDef{blockmapping.TagInt, []byte(`"1"`)}, blockmapping.Property{}, false},
		{propertyDef{blockmapping.TagString, []byte(`"north"`)}, blockmapping.StringProperty("p", "north"), true},
		{propertyDef{blockmapping.TagString, []byte(`1`)}, blockmapping.Property{}, false},
		{propertyDef{10, []byte(`{}`)}, blockmapping.Property{}, false},
	} {
		got, err := tc.def.property("p")
		if !tc.ok {
			require.Error(t, err, string(tc.def.Value))
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}
