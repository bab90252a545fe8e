package commands

import (
	"context"
	"encoding/hex"

	"github.com/chaisql/nbt/cmd/nbt/dbutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewPebbleCommand returns a cli.Command for "nbt pebble".
func NewPebbleCommand() *cli.Command {
	cmd := cli.Command{
		Name:        "pebble",
		Usage:       "Outputs the content of the Pebble database",
		UsageText:   `nbt pebble --db path [--prefix hex]`,
		Description: `The pebble command simply outputs the raw keys and values of the Pebble database in the standard output.`,
		Flags: []cli.Flag{
			dbFlag(),
			&cli.BoolFlag{
				Name:    "keys-only",
				Aliases: []string{"k"},
				Usage:   "Only output the keys.",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Only output the keys starting with this hex encoded prefix.",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		prefix, err := hex.DecodeString(cmd.String("prefix"))
		if err != nil {
			return errors.Wrap(err, "invalid prefix")
		}

		ng, err := dbutil.OpenDB(cmd.String("db"), false, Logger(ctx))
		if err != nil {
			return err
		}
		defer ng.Close()

		return dbutil.DumpPebble(ctx, ng, stdout(cmd), dbutil.DumpPebbleOptions{
			KeysOnly: cmd.Bool("keys-only"),
			Prefix:   prefix,
		})
	}

	return &cmd
}
