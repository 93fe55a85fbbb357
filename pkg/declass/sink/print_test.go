package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declass/declass/pkg/declass/options"
)

func TestPrintSink_WritesSourcesWithHeader(t *testing.T) {
	var buf bytes.Buffer
	s := NewPrint(&buf)

	require.NoError(t, s.Init(&options.DecompilerOptions{}, "app.jar"))
	require.NoError(t, s.ProcessClass("com/example/Foo", "class Foo {}"))
	require.NoError(t, s.Commit())

	out := buf.String()
	assert.Contains(t, out, "// com/example/Foo.java")
	assert.Contains(t, out, "class Foo {}")
}

func TestPrintSink_SkipsResources(t *testing.T) {
	var buf bytes.Buffer
	s := NewPrint(&buf)

	require.NoError(t, s.Init(&options.DecompilerOptions{}, "app.jar"))
	require.NoError(t, s.ProcessResource("res.txt", strings.NewReader("data")))
	assert.Empty(t, buf.String())
}

func TestPrintSink_TargetDir(t *testing.T) {
	s := NewPrint(&bytes.Buffer{})
	assert.Empty(t, s.TargetDir())
}
