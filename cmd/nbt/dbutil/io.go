package dbutil

import (
	"io"
	"os"
)

// ReadInput returns the content of the named file, or of r if name is empty or "-".
func ReadInput(name string, r io.Reader) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(r)
	}

	return os.ReadFile(name)
}

// CanReadFromStandardInput returns whether the standard input is piped.
// If it fails to get information about the standard input, it returns false.
func CanReadFromStandardInput() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) == 0
}
