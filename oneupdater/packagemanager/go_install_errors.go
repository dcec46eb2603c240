package packagemanager

import "strings"

// Matcher classifies the diagnostic output of a failed command.
type Matcher interface {
	Match(string) bool
}

// SubstringMatcher matches output containing the string.
type SubstringMatcher string

func (s SubstringMatcher) Match(out string) bool {
	return strings.Contains(out, string(s))
}

var (
	// The module root holds no main package; the binary lives elsewhere,
	// usually under cmd/<binary>.
	missingPackageMatcher Matcher = SubstringMatcher("does not contain package")

	// A tools module whose root package is guarded by build tags.
	buildConstraintsMatcher Matcher = SubstringMatcher("build constraints exclude all Go files")
)

// normalizeStderr folds multi-line go diagnostics onto one line so a
// matcher does not depend on where the toolchain wrapped its message.
func normalizeStderr(stderr string) string {
	return strings.ReplaceAll(stderr, "\n", " ")
}

// retryInstallPath returns the package path to try after installing path
// failed with stderr. It reports false when no alternative applies.
func retryInstallPath(binary, path, stderr string) (string, bool) {
	cmdSuffix := "/cmd/" + binary
	switch {
	case missingPackageMatcher.Match(stderr):
		if !strings.Contains(path, "/cmd/") {
			return path + cmdSuffix, true
		}
		if strings.HasSuffix(path, cmdSuffix) {
			return strings.TrimSuffix(path, cmdSuffix), true
		}
	case buildConstraintsMatcher.Match(stderr):
		if strings.Contains(path, "tools") {
			return path + cmdSuffix, true
		}
	}
	return "", false
}
