package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"

	"github.com/wramner/amqschedctl/internal/broker"
	"github.com/wramner/amqschedctl/internal/secrets"
)

// brokerSession is what list/rm need from a broker connection. The
// production implementation is broker.Session; tests swap connectBroker
// for a fake.
type brokerSession interface {
	Send(ctx context.Context, replyTo string, headers amqp.Table) error
	OpenReplyQueue() (*broker.ReplyQueue, error)
	Close()
}

var connectBroker = func(url, user, password string) (brokerSession, error) {
	return broker.Connect(url, user, password)
}

var readPassword = func() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("cannot prompt for password: stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type connFlags struct {
	url          *string
	user         *string
	password     *string
	logLevel     *string
	dotenvPath   *string
	otlpEndpoint *string
}

func registerConnFlags(fs *flag.FlagSet) *connFlags {
	return &connFlags{
		url:          fs.String("url", "", "broker URL, e.g. amqp://broker:5672/"),
		user:         fs.String("user", "", "broker user name if using authentication"),
		password:     fs.String("password", "", "broker password: literal, secret ref (env:NAME|file:PATH|raw:VALUE) or - to prompt"),
		logLevel:     fs.String("log-level", "info", "log level (debug|info|warn|error)"),
		dotenvPath:   fs.String("dotenv", "", "load environment variables from file (dev only)"),
		otlpEndpoint: fs.String("otlp-endpoint", "", "export a trace of this invocation to an OTLP HTTP collector"),
	}
}

type connSettings struct {
	url      string
	user     string
	password string
	logger   *slog.Logger

	shutdownTracing func(context.Context) error
}

// resolve validates the shared flags and prepares the logger, environment
// and credentials. On failure the message has already been written to
// stderr and the returned exit code is non-zero; configuration mistakes
// are 2, environment/secret failures are 1. No broker contact happens
// here.
func (f *connFlags) resolve(name string, stderr io.Writer) (connSettings, int) {
	s := connSettings{
		url:  strings.TrimSpace(*f.url),
		user: strings.TrimSpace(*f.user),
	}
	if s.url == "" {
		fmt.Fprintf(stderr, "%s: --url is required\n", name)
		return connSettings{}, 2
	}

	password := strings.TrimSpace(*f.password)
	if password != "" && s.user == "" {
		fmt.Fprintf(stderr, "%s: --password requires --user\n", name)
		return connSettings{}, 2
	}

	logger, err := newLogger(*f.logLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return connSettings{}, 2
	}
	s.logger = logger

	if path := strings.TrimSpace(*f.dotenvPath); path != "" {
		if err := loadDotenv(path); err != nil {
			fmt.Fprintf(stderr, "%s: dotenv: %v\n", name, err)
			return connSettings{}, 1
		}
	}

	switch {
	case password == "-":
		pw, err := readPassword()
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			return connSettings{}, 1
		}
		s.password = pw
	case secrets.IsRef(password):
		pw, err := secrets.LoadRef(password)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			return connSettings{}, 1
		}
		s.password = string(pw)
	default:
		s.password = password
	}

	if endpoint := strings.TrimSpace(*f.otlpEndpoint); endpoint != "" {
		shutdown, err := tracingInit(context.Background(), endpoint)
		if err != nil {
			// Tracing is best effort: a broken collector must not block
			// an operator mid-incident.
			logger.Warn("tracing_init_failed", slog.Any("err", err))
		} else {
			s.shutdownTracing = shutdown
		}
	}

	return s, 0
}

// flushTracing drains the span exporter before the process exits. No-op
// when tracing is off.
func flushTracing(s connSettings) {
	if s.shutdownTracing == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.shutdownTracing(ctx); err != nil && s.logger != nil {
		s.logger.Warn("tracing_shutdown_failed", slog.Any("err", err))
	}
}

func commandFailed(span trace.Span, stderr io.Writer, name string, err error) int {
	fmt.Fprintf(stderr, "%s: %v\n", name, err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return 1
}
