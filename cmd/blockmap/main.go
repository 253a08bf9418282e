package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/bedrock-tool/blockmap/utils"
	"github.com/bedrock-tool/blockmap/utils/commands"
	"github.com/bedrock-tool/blockmap/utils/config"
	"github.com/bedrock-tool/blockmap/utils/resources"

	_ "github.com/bedrock-tool/blockmap/subcommands"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var version string

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		debug      bool
		trace      bool
		configPath string
		resDir     string
		noLogFile  bool
	)
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.BoolVar(&trace, "trace", false, "trace logging")
	flag.StringVar(&configPath, "config", "", "path to the yaml configuration")
	flag.StringVar(&resDir, "resources", "", "directory with the block tables")
	flag.StringVar(&utils.DataFolder, "data", ".", "directory for logs and saved palettes")
	flag.BoolVar(&noLogFile, "nolog", false, "do not write a log file")
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.ImportantFlag("config")
	subcommands.ImportantFlag("resources")
	subcommands.ImportantFlag("debug")

	if len(os.Args) < 2 && term.IsTerminal(int(os.Stdin.Fd())) {
		os.Args = append(os.Args, askCommand())
	}

	flag.Parse()
	setupLogging(debug, trace, !noLogFile)
	if version != "" {
		logrus.Infof("blockmap version: %s", version)
	}

	conf, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal(err)
	}
	if resDir != "" {
		conf.Resources = resDir
	}
	env := &commands.Env{
		Config: conf,
		Loader: resources.NewLoader(os.DirFS(conf.Resources)),
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		logrus.Info("Exiting")
		cancel()
	}()

	ret := subcommands.Execute(ctx, env)
	os.Exit(int(ret))
}

func askCommand() string {
	names := make([]string, 0, len(commands.Registered))
	for name := range commands.Registered {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available commands:")
	for _, name := range names {
		fmt.Printf("\t%s\t%s\n", name, commands.Registered[name].Description())
	}
	fmt.Printf("Use '%s <command>' to run a command\n", os.Args[0])

	fmt.Printf("Input Command: ")
	reader := bufio.NewReader(os.Stdin)
	target, _ := reader.ReadString('\n')
	return strings.TrimSpace(target)
}
