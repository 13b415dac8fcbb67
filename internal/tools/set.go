package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agentx-labs/setupassist/internal/installer"
	"github.com/agentx-labs/setupassist/internal/scaffold"
	"github.com/rs/zerolog"
)

// MissingFilenameMessage is the tool result for create_file without a filename.
const MissingFilenameMessage = "Error: Filename is required to create a file."

// Call is one tool invocation requested by a language model.
type Call struct {
	ID        string
	Name      string
	Arguments string // raw JSON object
}

// Installer runs the project's package manager.
type Installer interface {
	Install(ctx context.Context) (*installer.Output, error)
}

// Set executes tool calls against the filesystem and package manager.
type Set struct {
	// BaseDir is where projects are created; empty means the working directory.
	BaseDir   string
	Installer Installer
	Log       zerolog.Logger
}

type createDirectoryArgs struct {
	ProjectName string `json:"project_name"`
}

type createFileArgs struct {
	ProjectName string `json:"project_name"`
	Filename    string `json:"filename"`
	Content     string `json:"content"`
}

// Execute validates the call's arguments and runs the tool. It returns the
// confirmation message on success.
func (s *Set) Execute(ctx context.Context, call Call) (string, error) {
	kind, ok := ParseKind(call.Name)
	if !ok {
		return "", fmt.Errorf("unknown tool %q", call.Name)
	}
	if err := Validate(kind, call.Arguments); err != nil {
		return "", err
	}

	log := s.Log.With().Str("tool", string(kind)).Str("call_id", call.ID).Logger()
	log.Debug().Str("arguments", call.Arguments).Msg("dispatching tool")
	start := time.Now()

	msg, err := s.dispatch(ctx, kind, call.Arguments)
	if err != nil {
		log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("tool failed")
		return "", err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("tool finished")
	return msg, nil
}

func (s *Set) dispatch(ctx context.Context, kind Kind, raw string) (string, error) {
	switch kind {
	case CreateDirectory:
		var args createDirectoryArgs
		if err := decode(raw, &args); err != nil {
			return "", err
		}
		res, err := scaffold.CreateDirectory(s.BaseDir, args.ProjectName)
		if err != nil {
			return "", err
		}
		return res.Message, nil

	case CreateFile:
		var args createFileArgs
		if err := decode(raw, &args); err != nil {
			return "", err
		}
		res, err := scaffold.CreateFile(s.BaseDir, args.ProjectName, args.Filename, args.Content)
		if err != nil {
			return "", err
		}
		return res.Message, nil

	case InstallDependencies:
		if s.Installer == nil {
			return "", errors.New("no package manager configured")
		}
		out, err := s.Installer.Install(ctx)
		if err != nil {
			return "", fmt.Errorf("dependency installation failed: %w", err)
		}
		return out.Message, nil
	}
	return "", fmt.Errorf("unknown tool %q", kind)
}

func decode(raw string, v any) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decoding arguments: %w", err)
	}
	return nil
}

// Render turns an Execute outcome into the text returned to the model.
// Failures become "Error: ..." so the caller never needs to branch.
func Render(msg string, err error) string {
	if err == nil {
		return msg
	}
	if errors.Is(err, scaffold.ErrMissingArgument) {
		return MissingFilenameMessage
	}
	return "Error: " + err.Error()
}
