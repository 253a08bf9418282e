package subcommands

import (
	"context"
	"errors"

	"github.com/bedrock-tool/blockmap/locale"
	"github.com/bedrock-tool/blockmap/utils/commands"
	"github.com/sirupsen/logrus"
)

type LookupSettings struct {
	Protocol  int32 `opt:"Protocol" flag:"protocol" default:"388" desc:"locale.protocol_version"`
	ID        int   `opt:"Legacy ID" flag:"id" desc:"locale.legacy_id"`
	Meta      int   `opt:"Meta" flag:"meta" desc:"locale.meta_value"`
	RuntimeID int64 `opt:"Runtime ID" flag:"runtime" default:"-1" desc:"locale.runtime_id"`
}

type LookupCMD struct{}

func (LookupCMD) Name() string        { return "lookup" }
func (LookupCMD) Description() string { return locale.Loc("lookup_synopsis", nil) }
func (LookupCMD) Settings() any       { return new(LookupSettings) }

func (LookupCMD) Run(ctx context.Context, env *commands.Env, settings any) error {
	s := settings.(*LookupSettings)
	reg, err := env.Registry()
	if err != nil {
		return err
	}
	epoch := reg.Resolve(s.Protocol).Epoch()

	if s.RuntimeID >= 0 {
		if s.RuntimeID > int64(^uint32(0)) {
			return errors.New("runtime id out of range")
		}
		rid := uint32(s.RuntimeID)
		id, meta, err := reg.FromRuntimeID(rid, s.Protocol)
		if err != nil {
			return err
		}
		logrus.Info(locale.Loc("reverse_result", locale.Strmap{
			"RuntimeID": rid,
			"ID":        id,
			"Meta":      meta,
			"Name":      reg.Resolve(s.Protocol).States()[rid].Name,
			"Epoch":     epoch,
		}))
		return nil
	}

	rid := reg.ToRuntimeID(s.ID, s.Meta, s.Protocol)
	if _, ok := reg.Resolve(s.Protocol).RuntimeID(s.ID, s.Meta); !ok {
		logrus.Warnf("%d:%d is not in %s, using the fallback", s.ID, s.Meta, epoch)
	}
	logrus.Info(locale.Loc("lookup_result", locale.Strmap{
		"ID":        s.ID,
		"Meta":      s.Meta,
		"RuntimeID": rid,
		"Epoch":     epoch,
	}))
	return nil
}

func init() {
	commands.RegisterCommand(&LookupCMD{})
}
