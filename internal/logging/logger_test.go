package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_InfoLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)
	t.Cleanup(func() { Init(os.Stderr, false) })

	Info("graph built", "nodes", 12)
	Debug("hidden detail", "edges", 3)

	out := buf.String()
	assert.Contains(t, out, "graph built")
	assert.Contains(t, out, "nodes=12")
	assert.NotContains(t, out, "hidden detail")
}

func TestInit_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, true)
	t.Cleanup(func() { Init(os.Stderr, false) })

	Debug("attempt failed", "attempt", 2)
	Warn("community unmerged", "community", 4)

	out := buf.String()
	assert.Contains(t, out, "attempt failed")
	assert.Contains(t, out, "attempt=2")
	assert.Contains(t, out, "community unmerged")
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)
	t.Cleanup(func() { Init(os.Stderr, false) })

	WithPrefix("ingest").Info("stored")
	assert.Contains(t, buf.String(), "ingest")
	assert.Contains(t, buf.String(), "stored")
}
