package stormext

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolRequirement describes a build tool dependency.
//
// # Examples
//
// Required tool:
//
//	ToolRequirement{
//	    Name: "cmake",
//	    Purpose: "build generator",
//	}
//
// Tool with alternatives:
//
//	ToolRequirement{
//	    Name: "c++",
//	    Alternatives: []string{"g++", "clang++"},
//	    Purpose: "C++ compiler",
//	}
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "cmake").
	Name string

	// Alternatives are tool names that satisfy this requirement as well.
	Alternatives []string

	// Optional tools are reported but never fail the check.
	Optional bool

	// Purpose is a human-readable description of why this tool is needed.
	Purpose string
}

// ToolStatus is the lookup result for one ToolRequirement.
type ToolStatus struct {
	Requirement ToolRequirement
	Found       string // Resolved binary, empty if none was found
}

// RequiredTools returns the tools a CMake build of the extensions needs.
func (t *CmakeToolchain) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{Name: t.program(), Purpose: "build generator"},
		{Name: "c++", Alternatives: []string{"g++", "clang++", "cl"}, Purpose: "C++ compiler"},
		{Name: "make", Alternatives: []string{"ninja", "gmake", "nmake"}, Optional: true, Purpose: "native build tool"},
	}
}

// CheckTools verifies all required tools are on PATH.
func (t *CmakeToolchain) CheckTools() error {
	return CheckRequiredTools(t.RequiredTools())
}

// CheckToolAvailable checks if a tool is available in the system PATH.
//
// This is a simple wrapper around exec.LookPath that provides
// consistent error messages.
func CheckToolAvailable(tool string) error {
	_, err := exec.LookPath(tool)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// LookupTools resolves each requirement, trying the primary name first and
// then the alternatives in order.
func LookupTools(requirements []ToolRequirement) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(requirements))
	for _, req := range requirements {
		status := ToolStatus{Requirement: req}
		for _, name := range append([]string{req.Name}, req.Alternatives...) {
			if path, err := exec.LookPath(name); err == nil {
				status.Found = path
				break
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// CheckRequiredTools verifies all required tools are available.
//
// # Behavior
//
//   - Checks the primary tool name first
//   - If not found, tries each alternative tool in order
//   - Optional tools are checked but don't cause errors
//   - Returns all missing required tools in a single error
//
// # Error Format
//
// Single missing tool:
//
//	cmake (build generator) not found in PATH
//
// Multiple missing tools:
//
//	missing required tools: cmake (build generator), c++ (C++ compiler)
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missingTools []string

	for _, status := range LookupTools(requirements) {
		req := status.Requirement
		if status.Found != "" || req.Optional {
			continue
		}
		if req.Purpose != "" {
			missingTools = append(missingTools, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
		} else {
			missingTools = append(missingTools, req.Name)
		}
	}

	if len(missingTools) == 0 {
		return nil
	}

	if len(missingTools) == 1 {
		return fmt.Errorf("%s not found in PATH", missingTools[0])
	}

	return fmt.Errorf("missing required tools: %s", strings.Join(missingTools, ", "))
}
