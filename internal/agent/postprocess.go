package agent

import "regexp"

var createProjectRe = regexp.MustCompile(`create project\s* \s*["']?([^"']+)["']?`)

// ExtractProjectName scrapes a project name from phrases like
// `create project "demo_app"`. It is best effort.
func ExtractProjectName(out string) (string, bool) {
	m := createProjectRe.FindStringSubmatch(out)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PostProcess returns the extracted project name, or out unchanged when
// nothing matches.
func PostProcess(out string) string {
	if name, ok := ExtractProjectName(out); ok {
		return name
	}
	return out
}
