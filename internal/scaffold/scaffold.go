package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrMissingArgument is returned when a required argument is empty.
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidName is returned when a name sanitizes to empty, "." or "..".
	ErrInvalidName = errors.New("invalid name")
)

var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Result holds the outcome of a scaffold operation.
type Result struct {
	Path    string // absolute or baseDir-relative path that was created
	Message string // confirmation shown to the user
}

func (r *Result) String() string { return r.Message }

// CleanName trims surrounding whitespace and replaces each of < > : " / \ | ? *
// with an underscore.
func CleanName(name string) string {
	return unsafeChars.ReplaceAllString(strings.TrimSpace(name), "_")
}

func validName(raw string) (string, error) {
	name := CleanName(raw)
	switch name {
	case "", ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidName, raw)
	}
	return name, nil
}

// CreateDirectory creates project (and any missing parents) under baseDir.
// An empty baseDir means the current working directory. An existing
// directory is not an error.
func CreateDirectory(baseDir, project string) (*Result, error) {
	name, err := validName(project)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory %s: %w", dir, err)
	}

	return &Result{
		Path:    dir,
		Message: fmt.Sprintf("Project directory '%s' created.", name),
	}, nil
}

// CreateFile writes content to filename inside project, creating the project
// directory when needed. An existing file is overwritten.
func CreateFile(baseDir, project, filename, content string) (*Result, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: filename", ErrMissingArgument)
	}

	projectName, err := validName(project)
	if err != nil {
		return nil, err
	}
	fileName, err := validName(filename)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(baseDir, projectName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	return &Result{
		Path:    path,
		Message: fmt.Sprintf("File '%s' created in '%s'.", fileName, projectName),
	}, nil
}
