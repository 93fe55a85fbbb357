package decomp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/declass/declass/pkg/declass/loader"
	"github.com/declass/declass/pkg/declass/logging"
	"github.com/declass/declass/pkg/declass/options"
)

// logger is the package-level logger for decompiler operations.
var logger = logging.Get("decomp")

// ExecDecompiler runs an external decompiler command per class. The
// class bytecode is staged to a temporary file whose path is appended
// to the configured argument list; the decompiled source is read from
// the command's stdout.
//
// Instances are safe for concurrent use; every call stages its own
// temporary file and process.
type ExecDecompiler struct {
	command []string
	opts    *options.DecompilerOptions
}

// NewExec creates an ExecDecompiler for the given command line.
func NewExec(command []string, opts *options.DecompilerOptions) (*ExecDecompiler, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("decompiler command not configured")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &ExecDecompiler{command: command, opts: opts}, nil
}

// Options returns the active decompilation options.
func (d *ExecDecompiler) Options() *options.DecompilerOptions {
	return d.opts
}

// DecompileClass stages the cached bytecode and runs the external
// command. The temporary class file is removed on every path.
func (d *ExecDecompiler) DecompileClass(ctx context.Context, ldr *loader.Loader, name string) (string, error) {
	data, err := ldr.Load(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "declass-*.class")
	if err != nil {
		return "", fmt.Errorf("staging class %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("staging class %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("staging class %s: %w", name, err)
	}

	args := append(append([]string(nil), d.command[1:]...), tmp.Name())
	cmd := exec.CommandContext(ctx, d.command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running external decompiler", "class", name, "command", d.command[0])
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("decompiling %s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("decompiling %s: %w", name, err)
	}

	return stdout.String(), nil
}
