package tools

// Kind identifies one tool in the capability set.
type Kind string

const (
	CreateDirectory     Kind = "create_directory"
	CreateFile          Kind = "create_file"
	InstallDependencies Kind = "install_dependencies"
)

// AllKinds returns every tool kind in the order they are advertised.
func AllKinds() []Kind {
	return []Kind{CreateDirectory, CreateFile, InstallDependencies}
}

// ParseKind converts a tool name to a Kind, returning false if unknown.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "create_directory":
		return CreateDirectory, true
	case "create_file":
		return CreateFile, true
	case "install_dependencies":
		return InstallDependencies, true
	default:
		return "", false
	}
}
