package subcommands

import (
	"context"
	"errors"

	"github.com/bedrock-tool/blockmap/locale"
	"github.com/bedrock-tool/blockmap/utils/commands"
	"github.com/sirupsen/logrus"
)

type VerifySettings struct{}

type VerifyCMD struct{}

func (VerifyCMD) Name() string        { return "verify" }
func (VerifyCMD) Description() string { return locale.Loc("verify_synopsis", nil) }
func (VerifyCMD) Settings() any       { return new(VerifySettings) }

func (VerifyCMD) Run(ctx context.Context, env *commands.Env, _ any) error {
	reg, err := env.Registry()
	if err != nil {
		return err
	}

	var problems int
	for _, e := range reg.Epochs() {
		t := reg.Resolve(e.Protocol)
		errs := t.Verify()
		if len(errs) == 0 {
			logrus.Info(locale.Loc("verify_ok", locale.Strmap{"Epoch": e, "States": t.Len(), "Skipped": t.Skipped()}))
			continue
		}
		logrus.Error(locale.Loc("verify_failed", locale.Strmap{"Epoch": e, "Count": len(errs)}))
		for _, err := range errs {
			logrus.Error(err)
		}
		problems += len(errs)
	}
	if problems > 0 {
		return errors.New(locale.Loc("verify_summary", locale.Strmap{"Count": problems}))
	}
	return nil
}

func init() {
	commands.RegisterCommand(&VerifyCMD{})
}
