package subcommands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bedrock-tool/blockmap/locale"
	"github.com/bedrock-tool/blockmap/utils/blockmapping"
	"github.com/bedrock-tool/blockmap/utils/commands"
	"github.com/fatih/color"
	"github.com/repeale/fp-go"
)

type StatesSettings struct {
	Protocol   int32  `opt:"Protocol" flag:"protocol" default:"388" desc:"locale.protocol_version"`
	Filter     string `opt:"Filter" flag:"filter" desc:"locale.filter_name"`
	Properties bool   `opt:"Properties" flag:"props" desc:"locale.show_properties"`
}

type StatesCMD struct{}

func (StatesCMD) Name() string        { return "states" }
func (StatesCMD) Description() string { return locale.Loc("states_synopsis", nil) }
func (StatesCMD) Settings() any       { return new(StatesSettings) }

type stateLine struct {
	rid   int
	state blockmapping.BlockState
}

func (StatesCMD) Run(ctx context.Context, env *commands.Env, settings any) error {
	s := settings.(*StatesSettings)
	reg, err := env.Registry()
	if err != nil {
		return err
	}

	states := reg.KnownStates(s.Protocol)
	lines := make([]stateLine, len(states))
	for i, st := range states {
		lines[i] = stateLine{rid: i, state: st}
	}
	lines = fp.Filter(func(l stateLine) bool {
		return strings.Contains(l.state.Name, s.Filter)
	})(lines)

	for _, l := range lines {
		legacy := fmt.Sprintf("%d:%d", l.state.LegacyID, l.state.Meta)
		if !l.state.Mappable() {
			legacy = color.YellowString("%s", legacy)
		}
		fmt.Printf("%5d  %-9s %s", l.rid, legacy, l.state.Name)
		if s.Properties && len(l.state.Properties) > 0 {
			props := fp.Map(func(p blockmapping.Property) string {
				return fmt.Sprintf("%s=%v", p.Name, p.Value)
			})(l.state.Properties)
			fmt.Print(color.CyanString(" [%s]", strings.Join(props, ",")))
		}
		fmt.Println()
	}
	return nil
}

func init() {
	commands.RegisterCommand(&StatesCMD{})
}
