package testutil

import (
	"testing"

	"github.com/chaisql/nbt/internal/encoding"
	"github.com/cockroachdb/errors"
)

// ErrorIs fails unless err matches target, including matches through
// error marks.
func ErrorIs(t testing.TB, err error, target error) {
	t.Helper()
	ErrorIsf(t, err, target, "Expected error to be %v but got %v instead", target, err)
}

func ErrorIsf(t testing.TB, err error, target error, str string, args ...interface{}) {
	t.Helper()

	if errors.Is(err, target) {
		return
	}
	t.Logf(str, args...)
	if err != nil {
		t.Logf("Stacktrace:\n%+v", err)
	}
	t.FailNow()
}

// ErrorAt fails unless err matches target and was detected at offset off.
func ErrorAt(t testing.TB, err error, target error, off int) {
	t.Helper()

	ErrorIs(t, err, target)
	if got := encoding.OffsetOf(err); got != off {
		t.Fatalf("Expected error at offset %d, got %d: %v", off, got, err)
	}
}
