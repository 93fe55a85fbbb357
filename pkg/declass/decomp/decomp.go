// Package decomp defines the decompiler capability consumed by the
// pipeline. The bytecode-to-source algorithm itself is external; this
// package only fixes its contract and ships an adapter that drives an
// external decompiler binary.
package decomp

import (
	"context"

	"github.com/declass/declass/pkg/declass/loader"
	"github.com/declass/declass/pkg/declass/options"
)

// Decompiler turns cached bytecode into source text.
//
// DecompileClass receives the loader as its class-resolution context
// rather than a single byte buffer: decompiling class A may require
// resolving types declared in class B of the same archive, which is why
// the pipeline caches all classes before dispatching any.
type Decompiler interface {
	// Options returns the active decompilation options.
	Options() *options.DecompilerOptions

	// DecompileClass decompiles the class cached under name.
	// A failure affects only that name.
	DecompileClass(ctx context.Context, ldr *loader.Loader, name string) (string, error)
}
