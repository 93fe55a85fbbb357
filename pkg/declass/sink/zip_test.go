package sink

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declass/declass/pkg/declass/options"
)

func readZipEntries(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		entries[f.Name] = string(data)
	}
	return entries
}

func TestZipSink_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")
	s := NewZip(path)

	require.NoError(t, s.Init(&options.DecompilerOptions{}, "app.jar"))
	require.NoError(t, s.ProcessClass("com/example/Foo", "class Foo {}\n"))
	require.NoError(t, s.ProcessResource("res.txt", strings.NewReader("hello")))
	require.NoError(t, s.Commit())

	entries := readZipEntries(t, path)
	assert.Equal(t, "class Foo {}\n", entries["com/example/Foo.java"])
	assert.Equal(t, "hello", entries["res.txt"])
}

func TestZipSink_CommitWithoutInit(t *testing.T) {
	s := NewZip(filepath.Join(t.TempDir(), "out.zip"))
	assert.Error(t, s.Commit())
}

func TestZipSink_ProcessBeforeInit(t *testing.T) {
	s := NewZip(filepath.Join(t.TempDir(), "out.zip"))
	assert.Error(t, s.ProcessClass("Foo", "class Foo {}"))
}

func TestZipSink_TargetDir(t *testing.T) {
	s := NewZip(filepath.Join(t.TempDir(), "out.zip"))
	assert.Empty(t, s.TargetDir())
}
