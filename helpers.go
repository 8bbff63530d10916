package stormext

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchesPattern checks if a string matches any of the given regex patterns.
//
// Invalid patterns are silently skipped.
//
// # Example
//
//	if MatchesPattern(name, `^stormpy\.`) {
//	    // target belongs to the stormpy package
//	}
func MatchesPattern(s string, patterns ...string) bool {
	for _, pattern := range patterns {
		if matched, _ := regexp.MatchString(pattern, s); matched {
			return true
		}
	}
	return false
}

// MatchesExtension checks if a filename has any of the given extensions.
//
// This is a case-insensitive check. Used to recognize compiled modules
// (.so, .pyd, .dylib, .dll).
func MatchesExtension(filename string, extensions ...string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// BuildError creates a standardized build error with output context.
//
// This helper formats toolchain failures consistently, always including the
// captured output verbatim so nothing the compiler reported is lost.
//
// # Parameters
//
//   - step: What failed (e.g., "CMake configure", "CMake build stormpy.core")
//   - output: Lines of output from the process
//   - err: The underlying error (can be nil)
//
// # Format
//
// With error and output:
//
//	CMake build stormpy.core failed: exit status 2
//
//	Build output:
//	/src/core.cpp:12: error: ...
//
// With error but no output:
//
//	CMake build stormpy.core failed: exit status 2
func BuildError(step string, output []string, err error) error {
	outputStr := strings.Join(output, "\n")

	var prefix string
	if err != nil {
		prefix = fmt.Sprintf("%s failed: %v", step, err)
	} else {
		prefix = fmt.Sprintf("%s failed", step)
	}

	if outputStr != "" {
		return fmt.Errorf("%s\n\nBuild output:\n%s", prefix, outputStr)
	}

	return fmt.Errorf("%s", prefix)
}
