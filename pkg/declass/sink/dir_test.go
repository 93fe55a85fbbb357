package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declass/declass/pkg/declass/options"
)

func TestDirSink_ProcessClass(t *testing.T) {
	dir := t.TempDir()
	s := NewDir(dir)

	require.NoError(t, s.Init(&options.DecompilerOptions{}, "app.jar"))
	require.NoError(t, s.ProcessClass("com/example/Foo", "class Foo {}\n"))
	require.NoError(t, s.Commit())

	data, err := os.ReadFile(filepath.Join(dir, "com", "example", "Foo.java"))
	require.NoError(t, err)
	assert.Equal(t, "class Foo {}\n", string(data))
}

func TestDirSink_ProcessResource(t *testing.T) {
	dir := t.TempDir()
	s := NewDir(dir)

	require.NoError(t, s.Init(&options.DecompilerOptions{}, "app.jar"))
	require.NoError(t, s.ProcessResource("META-INF/MANIFEST.MF", strings.NewReader("Manifest-Version: 1.0\n")))
	require.NoError(t, s.Commit())

	data, err := os.ReadFile(filepath.Join(dir, "META-INF", "MANIFEST.MF"))
	require.NoError(t, err)
	assert.Equal(t, "Manifest-Version: 1.0\n", string(data))
}

func TestDirSink_RejectsEscapingNames(t *testing.T) {
	dir := t.TempDir()
	s := NewDir(dir)
	require.NoError(t, s.Init(&options.DecompilerOptions{}, "app.jar"))

	err := s.ProcessResource("../escape.txt", strings.NewReader("nope"))
	assert.Error(t, err)

	err = s.ProcessClass("../../Escape", "class Escape {}")
	assert.Error(t, err)
}

func TestDirSink_TargetDir(t *testing.T) {
	dir := t.TempDir()
	s := NewDir(dir)
	assert.Equal(t, dir, s.TargetDir())
}

func TestDirSink_InitWithoutRoot(t *testing.T) {
	s := NewDir("")
	assert.Error(t, s.Init(&options.DecompilerOptions{}, "app.jar"))
}

func TestDirSink_InitCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	s := NewDir(dir)
	require.NoError(t, s.Init(&options.DecompilerOptions{}, "app.jar"))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
