package commands

import (
	"context"
	"flag"
	"reflect"
	"sync"

	"github.com/bedrock-tool/blockmap/locale"
	"github.com/bedrock-tool/blockmap/utils"
	"github.com/bedrock-tool/blockmap/utils/blockmapping"
	"github.com/bedrock-tool/blockmap/utils/config"
	"github.com/bedrock-tool/blockmap/utils/resources"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var Registered = map[string]Command{}

type Command interface {
	Name() string
	Description() string
	Settings() any
	Run(ctx context.Context, env *Env, settings any) error
}

func RegisterCommand(sub Command) {
	Registered[sub.Name()] = sub
	subcommands.Register(&subcommand{cmd: sub}, "")
}

// Env is what commands share: the configuration and the block registry,
// which is built on first use.
type Env struct {
	Config *config.Config
	Loader *resources.Loader

	once     sync.Once
	registry *blockmapping.Registry
	err      error
}

func (e *Env) Registry() (*blockmapping.Registry, error) {
	e.once.Do(func() {
		logrus.Info(locale.Loc("building_tables", locale.Strmap{"Path": e.Config.Resources}))
		e.registry, e.err = e.Config.Registry(e.Loader)
	})
	return e.registry, e.err
}

// subcommand adapts a Command to google/subcommands.
type subcommand struct {
	cmd      Command
	settings any
	consumer *Arg
}

func (s *subcommand) Name() string     { return s.cmd.Name() }
func (s *subcommand) Synopsis() string { return s.cmd.Description() }
func (s *subcommand) Usage() string {
	return s.cmd.Name() + ": " + s.cmd.Description() + "\n"
}

func (s *subcommand) SetFlags(f *flag.FlagSet) {
	s.settings = s.cmd.Settings()
	consumer, err := RegisterFlags(s.settings, f)
	if err != nil {
		panic(err)
	}
	s.consumer = consumer
}

func (s *subcommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if s.consumer != nil {
		s.consumer.field.Set(reflect.ValueOf(f.Args()))
	}
	var env *Env
	if len(args) > 0 {
		env, _ = args[0].(*Env)
	}
	if env == nil {
		logrus.Error("no environment passed to command")
		return subcommands.ExitFailure
	}
	err := utils.RecoverCall(func() error {
		return s.cmd.Run(ctx, env, s.settings)
	})
	if err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
