package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wramner/amqschedctl/internal/sched"
)

func rmCmd(args []string) int {
	return runRmCmd(args, os.Stdout, os.Stderr)
}

func runRmCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	conn := registerConnFlags(fs)
	all := fs.Bool("all", false, "remove ALL scheduled messages")
	id := fs.String("id", "", "remove one scheduled message by job id")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "rm: %v\n", err)
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "rm: unexpected positional arguments")
		return 2
	}

	jobID := strings.TrimSpace(*id)
	if *all == (jobID != "") {
		fmt.Fprintln(stderr, "rm: specify a scheduler job id (--id <job-id>) or --all, not both")
		return 2
	}

	cmd := sched.Command{Action: sched.ActionRemoveAll}
	if !*all {
		cmd = sched.Command{Action: sched.ActionRemoveOne, JobID: jobID}
	}
	msg, err := sched.Build(cmd, "")
	if err != nil {
		fmt.Fprintf(stderr, "rm: %v\n", err)
		return 2
	}

	settings, code := conn.resolve("rm", stderr)
	if code != 0 {
		return code
	}
	defer flushTracing(settings)

	ctx, span := otel.Tracer(tracerName).Start(context.Background(), "scheduler.remove")
	defer span.End()
	span.SetAttributes(attribute.String("scheduler.action", string(cmd.Action)))

	sess, err := connectBroker(settings.url, settings.user, settings.password)
	if err != nil {
		return commandFailed(span, stderr, "rm", err)
	}
	defer sess.Close()

	if err := sess.Send(ctx, msg.ReplyTo, msg.Headers); err != nil {
		return commandFailed(span, stderr, "rm", err)
	}

	// Fire-and-forget: the scheduler never confirms mutations, so all
	// that can be reported is that the command reached the broker.
	settings.logger.Info("remove_requested",
		slog.String("action", string(cmd.Action)),
		slog.String("job_id", cmd.JobID),
	)
	return 0
}
