package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/setupassist/internal/branding"
	"github.com/agentx-labs/setupassist/internal/config"
	"github.com/agentx-labs/setupassist/internal/installer"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Lookups are the host probes used by Run. Nil fields use the real host.
type Lookups struct {
	LookPath func(file string) (string, error)
	// Version runs bin with args and returns its combined output.
	Version func(ctx context.Context, bin string, args ...string) (string, error)
	Getwd   func() (string, error)
}

func (l Lookups) withDefaults() Lookups {
	if l.LookPath == nil {
		l.LookPath = exec.LookPath
	}
	if l.Version == nil {
		l.Version = func(ctx context.Context, bin string, args ...string) (string, error) {
			out, err := exec.CommandContext(ctx, bin, args...).CombinedOutput()
			return string(out), err
		}
	}
	if l.Getwd == nil {
		l.Getwd = os.Getwd
	}
	return l
}

// Report tallies check outcomes.
type Report struct {
	OK, Miss, Warn, Fail int
}

// Healthy reports whether no check missed or failed.
func (r *Report) Healthy() bool { return r.Miss == 0 && r.Fail == 0 }

type printer struct {
	w io.Writer
	r *Report
}

func (p printer) ok(format string, a ...any)   { p.r.OK++; p.line("[ OK ]", format, a...) }
func (p printer) miss(format string, a ...any) { p.r.Miss++; p.line("[MISS]", format, a...) }
func (p printer) warn(format string, a ...any) { p.r.Warn++; p.line("[WARN]", format, a...) }
func (p printer) fail(format string, a ...any) { p.r.Fail++; p.line("[FAIL]", format, a...) }
func (p printer) hint(format string, a ...any) { fmt.Fprintf(p.w, "         "+format+"\n", a...) }

func (p printer) line(tag, format string, a ...any) {
	fmt.Fprintf(p.w, "  %s %s\n", tag, fmt.Sprintf(format, a...))
}

// Run prints every check to w and returns the tally.
func Run(ctx context.Context, w io.Writer, s *config.Settings, l Lookups) *Report {
	l = l.withDefaults()
	r := &Report{}
	p := printer{w: w, r: r}

	fmt.Fprintln(w, "LLM check:")
	checkCredential(p, s)

	fmt.Fprintln(w, "Package manager check:")
	cwd, err := l.Getwd()
	if err != nil {
		p.fail("cannot resolve working directory: %v", err)
		return r
	}
	checkManager(ctx, p, s, l, cwd)

	fmt.Fprintln(w, "Workspace check:")
	checkWritable(p, cwd)

	return r
}

func checkCredential(p printer, s *config.Settings) {
	p.ok("provider %s, model %s", s.LLM.Provider, s.LLM.Model)
	if s.LLM.Endpoint != "" {
		p.ok("endpoint %s", s.LLM.Endpoint)
	}

	if s.LLM.APIKey == "" {
		p.miss("API key not set")
		fallback := "OPENAI_API_KEY"
		if s.LLM.Provider == config.ProviderAzure {
			fallback = "AZURE_OPENAI_KEY"
		}
		p.hint("Set %s or %s in %s", branding.EnvVar("LLM_API_KEY"), fallback, config.DefaultEnvFile)
		return
	}
	p.ok("API key set (%s)", config.RedactValue(config.KeyAPIKey, s.LLM.APIKey))
}

func checkManager(ctx context.Context, p printer, s *config.Settings, l Lookups, cwd string) {
	spec, err := installer.Lookup(s.Install.Manager)
	if err != nil {
		p.fail("%v", err)
		return
	}

	path, err := l.LookPath(spec.Binary)
	if err != nil {
		p.miss("%s not found on PATH", spec.Binary)
	} else {
		checkVersion(ctx, p, l, spec, path)
	}

	manifest := s.Install.Manifest
	if manifest == "" {
		manifest = spec.DefaultManifest
	}
	manifestPath := filepath.Join(cwd, manifest)
	if _, err := os.Stat(manifestPath); err != nil {
		p.miss("%s not found in %s", manifest, cwd)
		p.hint("install_dependencies will fail until it exists")
		return
	}
	p.ok("%s present", manifest)
}

func checkVersion(ctx context.Context, p printer, l Lookups, spec installer.Spec, path string) {
	out, err := l.Version(ctx, path, spec.VersionArgs...)
	if err != nil {
		p.warn("%s found at %s but version check failed: %v", spec.Binary, path, err)
		return
	}

	raw := versionPattern.FindString(out)
	if raw == "" {
		p.warn("%s found at %s, version unknown", spec.Binary, path)
		return
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		p.warn("%s found at %s, cannot parse version %q", spec.Binary, path, raw)
		return
	}

	c, err := semver.NewConstraint(">= " + spec.MinVersion)
	if err != nil {
		p.fail("bad minimum version %q for %s: %v", spec.MinVersion, spec.Name, err)
		return
	}
	if !c.Check(v) {
		p.warn("%s %s is older than %s", spec.Binary, v, spec.MinVersion)
		return
	}
	p.ok("%s %s found at %s", spec.Binary, v, path)
}

func checkWritable(p printer, dir string) {
	f, err := os.CreateTemp(dir, "."+strings.TrimPrefix(branding.HomeDir(), ".")+"-doctor-*")
	if err != nil {
		p.fail("%s is not writable: %v", dir, err)
		return
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	p.ok("%s is writable", dir)
}
