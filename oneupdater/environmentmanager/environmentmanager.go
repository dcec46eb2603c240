package environmentmanager

type EnvironmentManager interface {
	Home() (string, error)
	// Expand resolves a leading ~ and $VAR references in path.
	Expand(path string) (string, error)
}
