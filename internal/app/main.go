package app

import (
	"fmt"
	"os"
)

var (
	version   = "0.0.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func Main(args []string) int {
	if len(args) < 2 {
		printHelp()
		return 2
	}

	switch args[1] {
	case "list":
		return listCmd(args[2:])
	case "rm":
		return rmCmd(args[2:])
	case "version":
		return versionCmd(args[2:])
	case "help", "-h", "--help":
		printHelp()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[1])
		printHelp()
		return 2
	}
}

func printHelp() {
	fmt.Fprintln(os.Stdout, "amqschedctl")
	fmt.Fprintln(os.Stdout, "")
	fmt.Fprintln(os.Stdout, "Usage:")
	fmt.Fprintln(os.Stdout, "  amqschedctl list --url amqp://broker:5672/ [--user u] [--password ref] [--show-content] [--show-properties] [--totals-per-queue] [--initial-timeout 5s] [--receive-timeout 200ms]")
	fmt.Fprintln(os.Stdout, "  amqschedctl rm --url amqp://broker:5672/ [--user u] [--password ref] (--all | --id <job-id>)")
	fmt.Fprintln(os.Stdout, "  amqschedctl version [--long] [--json]")
	fmt.Fprintln(os.Stdout, "")
	fmt.Fprintln(os.Stdout, "Shared flags: --log-level debug|info|warn|error, --dotenv ./.env, --otlp-endpoint https://collector:4318")
	fmt.Fprintln(os.Stdout, "Passwords accept secret references (env:NAME, file:PATH, raw:VALUE) or - to prompt without echo.")
	fmt.Fprintln(os.Stdout, "")
	fmt.Fprintln(os.Stdout, "The scheduler store is local to one broker; in a cluster, run against each broker in turn.")
}
