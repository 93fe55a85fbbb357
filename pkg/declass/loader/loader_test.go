package loader

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
)

// failingReader returns an error after yielding a few bytes.
type failingReader struct {
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.read {
		return 0, errors.New("stream truncated")
	}
	r.read = true
	n := copy(p, []byte{0xCA, 0xFE})
	return n, nil
}

func TestLoader_AddAndLoad(t *testing.T) {
	l := New()

	data := []byte{0xCA, 0xFE, 0xBA, 0xBE}
	if err := l.AddClass("com/example/Foo", bytes.NewReader(data)); err != nil {
		t.Fatalf("AddClass() error = %v", err)
	}

	got, err := l.Load("com/example/Foo")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Load() = %v, want %v", got, data)
	}

	if !l.Has("com/example/Foo") {
		t.Error("Has() = false, want true")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if l.Size() != int64(len(data)) {
		t.Errorf("Size() = %d, want %d", l.Size(), len(data))
	}
}

func TestLoader_LoadMissing(t *testing.T) {
	l := New()

	_, err := l.Load("com/example/Missing")
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("Load() error = %v, want ErrClassNotFound", err)
	}
}

func TestLoader_AddClassReadFailure(t *testing.T) {
	l := New()

	err := l.AddClass("com/example/Bad", &failingReader{})
	if err == nil {
		t.Fatal("expected error from failing reader")
	}

	// The class must be absent from the cache after a failed add.
	if l.Has("com/example/Bad") {
		t.Error("failed class should not be cached")
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestLoader_ClassNamesInsertionOrder(t *testing.T) {
	l := New()

	names := []string{"b/B", "a/A", "c/C"}
	for _, name := range names {
		if err := l.AddClass(name, bytes.NewReader([]byte{1})); err != nil {
			t.Fatalf("AddClass(%q) error = %v", name, err)
		}
	}

	got := l.ClassNames()
	if len(got) != len(names) {
		t.Fatalf("ClassNames() len = %d, want %d", len(got), len(names))
	}
	for i, name := range names {
		if got[i] != name {
			t.Errorf("ClassNames()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestLoader_DuplicateAddReplaces(t *testing.T) {
	l := New()

	if err := l.AddClass("a/A", bytes.NewReader([]byte{1})); err != nil {
		t.Fatal(err)
	}
	if err := l.AddClass("a/A", bytes.NewReader([]byte{2})); err != nil {
		t.Fatal(err)
	}

	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	got, err := l.Load("a/A")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{2}) {
		t.Errorf("Load() = %v, want [2]", got)
	}
	if names := l.ClassNames(); len(names) != 1 {
		t.Errorf("ClassNames() = %v, want one entry", names)
	}
}

func TestLoader_ConcurrentLoad(t *testing.T) {
	l := New()
	if err := l.AddClass("a/A", bytes.NewReader([]byte{0xCA})); err != nil {
		t.Fatal(err)
	}

	// The cache is read-only during dispatch; concurrent lookups must
	// be safe in parallel mode.
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if _, err := l.Load("a/A"); err != nil {
					t.Error(err)
					return
				}
				_ = l.ClassNames()
			}
		}()
	}
	wg.Wait()
}

func TestLoader_EmptyStream(t *testing.T) {
	l := New()
	if err := l.AddClass("a/Empty", bytes.NewReader(nil)); err != nil {
		t.Fatalf("AddClass() error = %v", err)
	}
	got, err := l.Load("a/Empty")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}

var _ io.Reader = (*failingReader)(nil)
