package commands

import (
	"context"

	"github.com/chaisql/nbt/cmd/nbt/dbutil"
	"github.com/chaisql/nbt/internal/kv"
	"github.com/chaisql/nbt/internal/world"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// keyFlags returns the flags identifying a single record.
func keyFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag(),
		&cli.IntFlag{
			Name:     "x",
			Usage:    "Chunk X coordinate.",
			Required: true,
		},
		&cli.IntFlag{
			Name:     "z",
			Usage:    "Chunk Z coordinate.",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "dimension",
			Value: world.Overworld.String(),
			Usage: "Dimension of the chunk: overworld, nether, the-end or a number.",
		},
		&cli.StringFlag{
			Name:     "type",
			Aliases:  []string{"t"},
			Usage:    "Record type, by name or number.",
			Required: true,
		},
	}
}

// recordKey builds the key described by the flags of keyFlags.
// Only record types holding NBT are accepted.
func recordKey(cmd *cli.Command) (world.Key, error) {
	t, err := world.ParseRecordType(cmd.String("type"))
	if err != nil {
		return world.Key{}, err
	}
	if !t.HoldsNBT() {
		return world.Key{}, errors.Newf("records of type %s do not hold NBT", t)
	}

	dim, err := world.ParseDimension(cmd.String("dimension"))
	if err != nil {
		return world.Key{}, err
	}

	return world.Key{
		X:         int32(cmd.Int("x")),
		Z:         int32(cmd.Int("z")),
		Dimension: dim,
		Type:      t,
	}, nil
}

// NewGetCommand returns a cli.Command for "nbt get".
func NewGetCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "get",
		Usage:     "Output one NBT record of a world database as typed JSON",
		UsageText: `nbt get --db path --x X --z Z -t type [--dimension dim] [--pretty]`,
		Flags: append(keyFlags(),
			&cli.BoolFlag{
				Name:    "pretty",
				Aliases: []string{"p"},
				Usage:   "Indent the output.",
			},
		),
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		key, err := recordKey(cmd)
		if err != nil {
			return err
		}

		ng, err := dbutil.OpenDB(cmd.String("db"), false, Logger(ctx))
		if err != nil {
			return err
		}
		defer ng.Close()

		tx, err := ng.Begin(kv.TxOptions{})
		if err != nil {
			return err
		}
		defer tx.Rollback()

		roots, err := world.GetRecord(tx, key, decodeOptions(cmd))
		if errors.Is(err, kv.ErrKeyNotFound) {
			return errors.Newf("no record %s", key)
		}
		if err != nil {
			return err
		}

		return writeRoots(cmd, roots, cmd.Bool("pretty"))
	}

	return &cmd
}

// NewDeleteCommand returns a cli.Command for "nbt delete".
func NewDeleteCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "delete",
		Usage:     "Remove one NBT record from a world database",
		UsageText: `nbt delete --db path --x X --z Z -t type [--dimension dim]`,
		Flags:     keyFlags(),
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		key, err := recordKey(cmd)
		if err != nil {
			return err
		}

		logger := Logger(ctx)

		ng, err := dbutil.OpenDB(cmd.String("db"), false, logger)
		if err != nil {
			return err
		}
		defer ng.Close()

		tx, err := ng.Begin(kv.TxOptions{Writable: true})
		if err != nil {
			return err
		}
		defer tx.Rollback()

		err = world.DeleteRecord(tx, key)
		if errors.Is(err, kv.ErrKeyNotFound) {
			return errors.Newf("no record %s", key)
		}
		if err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}

		logger.Debug("deleted record", "key", key.String())
		return nil
	}

	return &cmd
}
