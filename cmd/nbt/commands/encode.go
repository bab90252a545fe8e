package commands

import (
	"context"
	"io"
	"os"

	"github.com/chaisql/nbt"
	"github.com/urfave/cli/v3"
)

// NewEncodeCommand returns a cli.Command for "nbt encode".
func NewEncodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "encode",
		Usage:     "Encode typed JSON to an NBT document",
		UsageText: `nbt encode [-f file] [-o output]`,
		Description: `The encode command reads roots written as typed JSON, in the format produced by
the decode command, and writes them as a little-endian NBT document.

$ echo '[{"name":"","value":{"HP":{"byte":-1}}}]' | nbt encode -o out.nbt

Without -o, the document is written to the standard output.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Name of the file to read. Defaults to STDIN.",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Name of the file to write to. Defaults to STDOUT.",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		data, err := readInput(cmd, cmd.String("file"))
		if err != nil {
			return err
		}

		roots, err := nbt.ParseRootsJSON(data)
		if err != nil {
			return err
		}

		var w io.Writer = stdout(cmd)

		if f := cmd.String("output"); f != "" {
			file, err := os.Create(f)
			if err != nil {
				return err
			}
			defer file.Close()

			w = file
		}

		err = nbt.NewEncoder(w).Encode(roots...)
		if err != nil {
			return err
		}

		Logger(ctx).Debug("encoded document", "roots", len(roots))
		return nil
	}

	return &cmd
}
