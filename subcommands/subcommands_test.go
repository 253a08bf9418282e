package subcommands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/bedrock-tool/blockmap/utils/commands"
	"github.com/bedrock-tool/blockmap/utils/config"
	"github.com/bedrock-tool/blockmap/utils/resources"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

const testConfig = `
seed: {mode: fixed, value: 5}
epochs:
  - {name: "1.12", protocol: 361, legacy_ids: ids.json, states: states.json, palette: legacy-list}
  - {name: "1.13", protocol: 388, legacy_ids: ids.json, states: states.json, properties: props.json}
`

func testEnv(t *testing.T) *commands.Env {
	t.Helper()
	c, err := config.Parse([]byte(testConfig))
	require.NoError(t, err)
	return &commands.Env{
		Config: c,
		Loader: resources.NewLoader(fstest.MapFS{
			"ids.json":    {Data: []byte(`{"minecraft:stone": 1, "minecraft:wool": 35, "minecraft:info_update": 248}`)},
			"states.json": {Data: []byte(`{"minecraft": {"stone": [0, 1, 2], "wool": [0, 14, 20], "info_update": [0]}}`)},
			"props.json":  {Data: []byte(`{"minecraft:wool": {"color": {"type": 8, "value": "white"}}}`)},
		}),
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"epochs", "lookup", "states", "palette", "verify"} {
		cmd, ok := commands.Registered[name]
		require.True(t, ok, name)
		require.NotEmpty(t, cmd.Description(), name)
	}
}

func TestVerifyCommand(t *testing.T) {
	require.NoError(t, VerifyCMD{}.Run(context.Background(), testEnv(t), new(VerifySettings)))
}

func TestLookupCommand(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, LookupCMD{}.Run(context.Background(), env, &LookupSettings{Protocol: 388, ID: 35, Meta: 14, RuntimeID: -1}))

	reg, err := env.Registry()
	require.NoError(t, err)
	rid := reg.ToRuntimeID(1, 2, 388)
	require.NoError(t, LookupCMD{}.Run(context.Background(), env, &LookupSettings{Protocol: 388, RuntimeID: int64(rid)}))
	require.Error(t, LookupCMD{}.Run(context.Background(), env, &LookupSettings{Protocol: 388, RuntimeID: 100}))
}

func TestPaletteCommand(t *testing.T) {
	env := testEnv(t)
	out := filepath.Join(t.TempDir(), "palette.bin.zst")
	require.NoError(t, PaletteCMD{}.Run(context.Background(), env, &PaletteSettings{Protocol: 361, Output: out, Compress: true}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	require.NoError(t, err)

	reg, err := env.Registry()
	require.NoError(t, err)
	want, err := reg.SerializedPalette(361)
	require.NoError(t, err)
	require.Equal(t, want, raw)
}

func TestPaletteFileName(t *testing.T) {
	name, err := paletteFileName("1.13", false)
	require.NoError(t, err)
	require.Equal(t, "palette-1.13.bin", name)

	name, err = paletteFileName("beta/2", true)
	require.NoError(t, err)
	require.NotContains(t, name, "/")
}
