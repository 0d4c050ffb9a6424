package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	envFile := flag.String("env", "", "optional .env file loaded before the environment")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&serveCmd{envFile: envFile}, "")
	commander.Register(&summaryCmd{envFile: envFile}, "")
	commander.Register(&createOwnerCmd{envFile: envFile}, "accounts")
	commander.Register(&resetPasswordCmd{envFile: envFile}, "accounts")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
