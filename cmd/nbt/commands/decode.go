package commands

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/chaisql/nbt"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewDecodeCommand returns a cli.Command for "nbt decode".
func NewDecodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "decode",
		Usage:     "Decode an NBT document to typed JSON",
		UsageText: `nbt decode [-f file] [--pretty]`,
		Description: `The decode command reads a little-endian NBT document and writes its roots as typed JSON.

$ nbt decode -f level.dat
[{"name":"","value":{"LevelName":{"string":"My World"}}}]

Without -f, the document is read from the standard input.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Name of the file to read. Defaults to STDIN.",
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Number of bytes to skip before the first root, such as a file header.",
			},
			&cli.BoolFlag{
				Name:    "pretty",
				Aliases: []string{"p"},
				Usage:   "Indent the output.",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Int("offset") < 0 {
			return errors.Newf("invalid offset %d: must not be negative", cmd.Int("offset"))
		}

		data, err := readInput(cmd, cmd.String("file"))
		if err != nil {
			return err
		}

		opts := decodeOptions(cmd)
		opts.Offset = int(cmd.Int("offset"))

		roots, err := nbt.DecodeWithOptions(data, opts)
		if err != nil {
			return err
		}

		Logger(ctx).Debug("decoded document", "roots", len(roots), "bytes", len(data))

		return writeRoots(cmd, roots, cmd.Bool("pretty"))
	}

	return &cmd
}

// writeRoots writes roots as typed JSON on a single line, or indented.
func writeRoots(cmd *cli.Command, roots []nbt.Root, pretty bool) error {
	out, err := nbt.MarshalRootsJSON(roots)
	if err != nil {
		return err
	}

	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err != nil {
			return err
		}
		out = buf.Bytes()
	}

	_, err = stdout(cmd).Write(append(out, '\n'))
	return err
}
