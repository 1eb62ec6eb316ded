package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wramner/amqschedctl/internal/sched"
)

func listCmd(args []string) int {
	return runListCmd(args, os.Stdout, os.Stderr)
}

func runListCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	conn := registerConnFlags(fs)
	showContent := fs.Bool("show-content", false, "show message content as a hex dump")
	showProperties := fs.Bool("show-properties", false, "show message properties")
	totals := fs.Bool("totals-per-queue", false, "show totals per queue instead of per-job detail")
	initialTimeout := fs.Duration("initial-timeout", sched.DefaultInitialTimeout, "wait for the first browse reply")
	receiveTimeout := fs.Duration("receive-timeout", sched.DefaultReceiveTimeout, "wait between consecutive browse replies")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "list: %v\n", err)
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "list: unexpected positional arguments")
		return 2
	}
	if *initialTimeout <= 0 || *receiveTimeout <= 0 {
		fmt.Fprintln(stderr, "list: timeouts must be positive")
		return 2
	}

	settings, code := conn.resolve("list", stderr)
	if code != 0 {
		return code
	}
	defer flushTracing(settings)

	display := sched.NewDisplay(*totals, *showProperties, *showContent)

	ctx, span := otel.Tracer(tracerName).Start(context.Background(), "scheduler.browse")
	defer span.End()
	span.SetAttributes(
		attribute.String("scheduler.action", string(sched.ActionBrowse)),
		attribute.Bool("scheduler.totals", display.Totals),
	)

	sess, err := connectBroker(settings.url, settings.user, settings.password)
	if err != nil {
		return commandFailed(span, stderr, "list", err)
	}
	defer sess.Close()

	rq, err := sess.OpenReplyQueue()
	if err != nil {
		return commandFailed(span, stderr, "list", err)
	}
	defer func() { _ = rq.Close() }()

	msg := sched.BuildBrowse(rq.Name)
	if err := sess.Send(ctx, msg.ReplyTo, msg.Headers); err != nil {
		return commandFailed(span, stderr, "list", err)
	}

	agg := sched.NewAggregator(stdout, display)
	col := &sched.Collector{
		Deliveries:     rq.Deliveries,
		InitialTimeout: *initialTimeout,
		ReceiveTimeout: *receiveTimeout,
		Logger:         settings.logger,
	}
	start := time.Now()
	n, err := col.Drain(ctx, agg.Record)
	if err != nil {
		return commandFailed(span, stderr, "list", err)
	}
	if err := agg.Flush(); err != nil {
		return commandFailed(span, stderr, "list", err)
	}

	span.SetAttributes(attribute.Int("scheduler.jobs_collected", n))
	settings.logger.Debug("browse_complete",
		slog.Int("jobs", n),
		slog.Duration("duration", time.Since(start)),
	)
	return 0
}
