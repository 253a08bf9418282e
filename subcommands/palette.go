package subcommands

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/bedrock-tool/blockmap/locale"
	"github.com/bedrock-tool/blockmap/utils"
	"github.com/bedrock-tool/blockmap/utils/commands"
	"github.com/flytam/filenamify"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type PaletteSettings struct {
	Protocol int32  `opt:"Protocol" flag:"protocol" default:"388" desc:"locale.protocol_version"`
	Output   string `opt:"Output" flag:"out" desc:"locale.output_file"`
	Save     bool   `opt:"Save" flag:"save" desc:"write to a file named after the epoch"`
	Compress bool   `opt:"Compress" flag:"compress" desc:"locale.compress_output"`
}

type PaletteCMD struct{}

func (PaletteCMD) Name() string        { return "palette" }
func (PaletteCMD) Description() string { return locale.Loc("palette_synopsis", nil) }
func (PaletteCMD) Settings() any       { return new(PaletteSettings) }

func (PaletteCMD) Run(ctx context.Context, env *commands.Env, settings any) error {
	s := settings.(*PaletteSettings)
	reg, err := env.Registry()
	if err != nil {
		return err
	}
	epoch := reg.Resolve(s.Protocol).Epoch()
	data, err := reg.SerializedPalette(s.Protocol)
	if err != nil {
		return err
	}

	if s.Compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	out := s.Output
	if out == "" && s.Save {
		out, err = paletteFileName(epoch.Name, s.Compress)
		if err != nil {
			return err
		}
		out = utils.PathData(out)
	}
	if out == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(hex.Dump(data))
			return nil
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	logrus.Info(locale.Loc("palette_written", locale.Strmap{"Count": len(data), "Epoch": epoch, "Path": out}))
	return nil
}

func paletteFileName(epoch string, compressed bool) (string, error) {
	name, err := filenamify.FilenamifyV2("palette-" + epoch)
	if err != nil {
		return "", err
	}
	name += ".bin"
	if compressed {
		name += ".zst"
	}
	return name, nil
}

func init() {
	commands.RegisterCommand(&PaletteCMD{})
}
