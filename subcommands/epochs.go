package subcommands

import (
	"context"
	"fmt"

	"github.com/bedrock-tool/blockmap/locale"
	"github.com/bedrock-tool/blockmap/utils/commands"
	"github.com/fatih/color"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

type EpochsSettings struct{}

type EpochsCMD struct{}

func (EpochsCMD) Name() string        { return "epochs" }
func (EpochsCMD) Description() string { return locale.Loc("epochs_synopsis", nil) }
func (EpochsCMD) Settings() any       { return new(EpochsSettings) }

func (EpochsCMD) Run(ctx context.Context, env *commands.Env, _ any) error {
	reg, err := env.Registry()
	if err != nil {
		return err
	}
	// the epoch a current client would be served from
	current := reg.Resolve(protocol.CurrentProtocol).Epoch()

	bold := color.New(color.Bold)
	for _, e := range reg.Epochs() {
		t := reg.Resolve(e.Protocol)
		line := fmt.Sprintf("%-8s %5d  %-11s %5d states", e.Name, e.Protocol, t.Strategy(), t.Len())
		if t.Skipped() > 0 {
			line += color.YellowString(" (%d without legacy id)", t.Skipped())
		}
		if e == current {
			bold.Print(line)
			fmt.Println(color.GreenString(" <- %d", protocol.CurrentProtocol))
			continue
		}
		fmt.Println(line)
	}
	return nil
}

func init() {
	commands.RegisterCommand(&EpochsCMD{})
}
