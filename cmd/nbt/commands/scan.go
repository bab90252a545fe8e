package commands

import (
	"context"
	"fmt"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/cmd/nbt/dbutil"
	"github.com/chaisql/nbt/internal/kv"
	"github.com/chaisql/nbt/internal/world"
	"github.com/urfave/cli/v3"
)

// NewScanCommand returns a cli.Command for "nbt scan".
func NewScanCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "scan",
		Usage:     "Decode and print the NBT records of a world database",
		UsageText: `nbt scan --db path [-t type]... [-w path=value]... [--keys-only]`,
		Description: `The scan command walks the chunk records of a world database, decodes those
holding NBT documents and prints one line per record: the key followed by
its roots as typed JSON.

By default, every record type holding NBT is visited. Use -t to choose:

$ nbt scan --db world/db -t entity

Filters keep only the roots whose field at the given dotted path equals the
value, or is a list of strings containing it. Records left with no roots are
not printed:

$ nbt scan --db world/db -t entity -w definitions=+minecraft:npc`,
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Record type to visit, by name or number. Defaults to all the types holding NBT.",
			},
			&cli.StringSliceFlag{
				Name:    "where",
				Aliases: []string{"w"},
				Usage:   "Keep only roots matching path=value.",
			},
			&cli.BoolFlag{
				Name:    "keys-only",
				Aliases: []string{"k"},
				Usage:   "Only output the keys.",
			},
			&cli.BoolFlag{
				Name:  "skip-invalid",
				Usage: "Log and skip records that cannot be decoded instead of failing.",
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "Number of records decoded concurrently. Defaults to the number of CPUs.",
				Sources: cli.EnvVars("NBT_WORKERS"),
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		logger := Logger(ctx)

		opts := world.ScanOptions{
			Workers:     int(cmd.Int("workers")),
			SkipInvalid: cmd.Bool("skip-invalid"),
			Decode:      decodeOptions(cmd),
			Logger:      logger,
		}

		for _, s := range cmd.StringSlice("type") {
			t, err := world.ParseRecordType(s)
			if err != nil {
				return err
			}
			opts.Types = append(opts.Types, t)
		}

		for _, s := range cmd.StringSlice("where") {
			w, err := world.ParseWhere(s)
			if err != nil {
				return err
			}
			opts.Where = append(opts.Where, w)
		}

		ng, err := dbutil.OpenDB(cmd.String("db"), false, logger)
		if err != nil {
			return err
		}
		defer ng.Close()

		tx, err := ng.Begin(kv.TxOptions{})
		if err != nil {
			return err
		}
		defer tx.Rollback()

		w := stdout(cmd)
		keysOnly := cmd.Bool("keys-only")

		var n int
		err = world.Scan(ctx, tx, &opts, func(r world.Record) error {
			n++

			if keysOnly {
				_, err := fmt.Fprintln(w, r.Key)
				return err
			}

			data, err := nbt.MarshalRootsJSON(r.Roots)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%s\t%s\n", r.Key, data)
			return err
		})
		if err != nil {
			return err
		}

		logger.Debug("scan done", "records", n)
		return nil
	}

	return &cmd
}
