package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Confirmation is the message returned after a successful install.
const Confirmation = "Dependencies installed."

// Supported package manager identifiers.
const (
	ManagerPip = "pip"
	ManagerNpm = "npm"
	ManagerGo  = "go"
)

// ErrManifestNotFound is returned when the manifest file does not exist.
var ErrManifestNotFound = errors.New("dependency manifest not found")

// Spec describes how to invoke one package manager.
type Spec struct {
	Name            string
	Binary          string
	DefaultManifest string
	VersionArgs     []string
	MinVersion      string // checked by doctor

	// Args returns the install arguments for the given manifest path.
	Args func(manifest string) []string
}

var specs = map[string]Spec{
	ManagerPip: {
		Name:            ManagerPip,
		Binary:          "pip",
		DefaultManifest: "requirements.txt",
		VersionArgs:     []string{"--version"},
		MinVersion:      "21.0.0",
		Args:            func(m string) []string { return []string{"install", "-r", m} },
	},
	ManagerNpm: {
		Name:            ManagerNpm,
		Binary:          "npm",
		DefaultManifest: "package.json",
		VersionArgs:     []string{"--version"},
		MinVersion:      "8.0.0",
		Args:            func(string) []string { return []string{"install"} },
	},
	ManagerGo: {
		Name:            ManagerGo,
		Binary:          "go",
		DefaultManifest: "go.mod",
		VersionArgs:     []string{"version"},
		MinVersion:      "1.21.0",
		Args:            func(string) []string { return []string{"mod", "download"} },
	},
}

// Lookup returns the Spec for a manager name.
func Lookup(name string) (Spec, error) {
	s, ok := specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("unknown package manager %q: supported managers are %s",
			name, strings.Join(Supported(), ", "))
	}
	return s, nil
}

// Supported returns the known manager names, sorted.
func Supported() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Output captures the result of an install run.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Message  string
}

// ExitError reports a package manager that exited non-zero.
type ExitError struct {
	Manager string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Manager, e.Code)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// Manager installs dependencies with one package manager.
type Manager struct {
	Spec Spec

	// Manifest overrides Spec.DefaultManifest when non-empty.
	Manifest string
	// Dir is the project directory; empty means the current directory.
	Dir string
	// Timeout bounds the subprocess; zero means no limit beyond ctx.
	Timeout time.Duration

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Log    zerolog.Logger
}

// New returns a Manager for the named package manager.
func New(name string) (*Manager, error) {
	spec, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Manager{Spec: spec}, nil
}

// ManifestPath returns the manifest file the manager will install from.
func (m *Manager) ManifestPath() string {
	name := m.Manifest
	if name == "" {
		name = m.Spec.DefaultManifest
	}
	return filepath.Join(m.Dir, name)
}

// Install runs the package manager and blocks until it exits.
func (m *Manager) Install(ctx context.Context) (*Output, error) {
	manifest := m.ManifestPath()
	if _, err := os.Stat(manifest); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, manifest)
		}
		return nil, fmt.Errorf("checking manifest %s: %w", manifest, err)
	}

	bin, err := exec.LookPath(m.Spec.Binary)
	if err != nil {
		return nil, fmt.Errorf("%s is not installed: %w", m.Spec.Name, err)
	}

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	args := m.Spec.Args(filepath.Base(manifest))
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = m.Dir

	stdout := m.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := m.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	m.Log.Debug().Str("manager", m.Spec.Name).Strs("args", args).Str("dir", m.Dir).Msg("installing dependencies")
	start := time.Now()
	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			m.Log.Debug().Int("exit_code", output.ExitCode).Dur("elapsed", time.Since(start)).Msg("install failed")
			return output, &ExitError{Manager: m.Spec.Name, Code: output.ExitCode, Stderr: output.Stderr}
		}
		return output, fmt.Errorf("running %s: %w", m.Spec.Name, err)
	}

	m.Log.Debug().Dur("elapsed", time.Since(start)).Msg("install finished")
	output.Message = Confirmation
	return output, nil
}
