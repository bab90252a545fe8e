package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/cmd/nbt/dbutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

type loggerKey struct{}

// NewApp creates the nbt CLI app.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:                  "nbt",
		Usage:                 "Read and write little-endian NBT documents and world records",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Minimum level of the logs written to stderr: debug, info, warn or error.",
				Sources: cli.EnvVars("NBT_LOG_LEVEL"),
			},
			&cli.IntFlag{
				Name:    "max-depth",
				Value:   nbt.DefaultMaxDepth,
				Usage:   "Maximum nesting of compounds and lists accepted when decoding. A negative value disables the limit.",
				Sources: cli.EnvVars("NBT_MAX_DEPTH"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			var level slog.Level
			if err := level.UnmarshalText([]byte(strings.ToUpper(cmd.String("log-level")))); err != nil {
				return ctx, errors.Wrap(err, "invalid log level")
			}

			w := cmd.Root().ErrWriter
			if w == nil {
				w = os.Stderr
			}
			logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

			return context.WithValue(ctx, loggerKey{}, logger), nil
		},
		Commands: []*cli.Command{
			NewDecodeCommand(),
			NewEncodeCommand(),
			NewScanCommand(),
			NewPutCommand(),
			NewGetCommand(),
			NewDeleteCommand(),
			NewPebbleCommand(),
			NewVersionCommand(),
		},
	}
}

// Logger returns the logger set up by the app, or slog.Default.
func Logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}

	return slog.Default()
}

func decodeOptions(cmd *cli.Command) *nbt.DecodeOptions {
	return &nbt.DecodeOptions{MaxDepth: int(cmd.Int("max-depth"))}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Usage:    "Path of the Pebble database.",
		Required: true,
		Sources:  cli.EnvVars("NBT_DB"),
	}
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}

	return os.Stdin
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

func readInput(cmd *cli.Command, name string) ([]byte, error) {
	r := stdin(cmd)
	if (name == "" || name == "-") && r == os.Stdin && !dbutil.CanReadFromStandardInput() {
		return nil, errors.New("no input: pass a file with -f or pipe data to stdin")
	}

	return dbutil.ReadInput(name, r)
}
