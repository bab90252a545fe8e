package commands

import (
	"context"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/cmd/nbt/dbutil"
	"github.com/chaisql/nbt/internal/kv"
	"github.com/chaisql/nbt/internal/world"
	"github.com/urfave/cli/v3"
)

// NewPutCommand returns a cli.Command for "nbt put".
func NewPutCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "put",
		Usage:     "Store typed JSON as an NBT record of a world database",
		UsageText: `nbt put --db path --x X --z Z -t type [--dimension dim] [-f file]`,
		Description: `The put command encodes roots written as typed JSON and stores them as the
record of the given chunk and type, replacing any previous record.

$ nbt put --db world/db --x 0 --z -1 -t entity -f entities.json

The database is created if it doesn't exist.`,
		Flags: append(keyFlags(),
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Name of the file to read. Defaults to STDIN.",
			},
		),
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		key, err := recordKey(cmd)
		if err != nil {
			return err
		}

		data, err := readInput(cmd, cmd.String("file"))
		if err != nil {
			return err
		}

		roots, err := nbt.ParseRootsJSON(data)
		if err != nil {
			return err
		}

		logger := Logger(ctx)

		ng, err := dbutil.OpenDB(cmd.String("db"), true, logger)
		if err != nil {
			return err
		}
		defer ng.Close()

		tx, err := ng.Begin(kv.TxOptions{Writable: true})
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if err := world.PutRecord(tx, key, roots); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}

		logger.Debug("stored record", "key", key.String(), "roots", len(roots))
		return nil
	}

	return &cmd
}
