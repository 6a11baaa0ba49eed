// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger captures log output for assertions in tests.
type TestLogger struct {
	zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger returns a trace-level JSON logger writing to a buffer.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()
	buf := &bytes.Buffer{}
	return &TestLogger{
		Logger: zerolog.New(buf).Level(zerolog.TraceLevel),
		Buffer: buf,
	}
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string {
	return tl.Buffer.String()
}

// Contains reports whether the captured output contains substr.
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}
