package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/terraincognita07/samaan/internal/cli"
	"github.com/terraincognita07/samaan/internal/config"
	"github.com/terraincognita07/samaan/internal/db"
	"github.com/terraincognita07/samaan/internal/services"
)

type summaryCmd struct {
	envFile *string
	date    string
	last    bool
	plain   bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the calorie summary of a Thursday to Wednesday period" }
func (*summaryCmd) Usage() string {
	return `summary [-d YYYY-MM-DD] [-last] [-plain]

  Prints net calories per day for the period containing -d (default today)
  and the evaluation against the current weight loss goal. -last reports the
  period before it.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "reference date, defaults to today")
	f.BoolVar(&c.last, "last", false, "report the previous period")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	database, err := openDatabase(*c.envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeDatabase(database)

	// TZ may come from the env file, which openDatabase has loaded by now.
	location, err := config.LocationFromEnvironment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	reference, err := summaryReference(c.date, time.Now().In(location))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -d %q, want YYYY-MM-DD\n", c.date)
		return subcommands.ExitUsageError
	}

	repositories := db.NewRepositories(database)
	digests := services.NewDigestService(services.NewCalorieService(repositories.Calories, repositories.Goals))
	if err := cli.PrintSummary(digests, reference, c.last, c.plain, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func summaryReference(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	return services.ParseCalendarDay(raw)
}
