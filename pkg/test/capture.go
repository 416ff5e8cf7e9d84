package test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout runs fn with os.Stdout redirected and returns what it wrote.
// os.Stdout is restored even if fn panics.
func CaptureStdout(t testing.TB, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.String()
	}()

	original := os.Stdout
	os.Stdout = w

	var captured string
	func() {
		defer func() {
			os.Stdout = original
			_ = w.Close()
			captured = <-done
		}()
		fn()
	}()
	return captured
}
