package stormext

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Compiler flag variable extended with the package version.
const compilerFlagsVar = "CXXFLAGS"

// Interpreters tried, in order, when Options.Interpreter is empty.
var interpreterNames = []string{"python3", "python"}

// ResolveConfig computes the configuration for a whole run.
//
// The environment is copied from opts.Environ (os.Environ() when nil) and
// CXXFLAGS is extended with a VERSION_INFO define. Any value CXXFLAGS already
// had is kept in front. DependencyDir is passed through as given; CMake
// reports it if it is wrong.
//
// An empty Interpreter is filled with the first python3 or python found on
// the PATH of that environment, so CMake builds against the same Python the
// modules are packaged for.
//
// ResolveConfig never touches the process environment, so calling it more
// than once in the same process yields independent configurations.
func ResolveConfig(opts Options) *BuildConfig {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	env := environMap(environ)
	env[compilerFlagsVar] = appendFlag(env[compilerFlagsVar], versionDefine(opts.Version))

	interpreter := opts.Interpreter
	if interpreter == "" {
		interpreter = findInterpreter(env)
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	return &BuildConfig{
		BuildType:     BuildTypeFor(opts.Debug),
		Parallel:      parallel,
		DependencyDir: opts.DependencyDir,
		Interpreter:   interpreter,
		BuildTemp:     opts.BuildTemp,
		LibDir:        opts.LibDir,
		Env:           env,
	}
}

// versionDefine returns the preprocessor define carrying the version. The
// quotes are escaped so they survive the shell the build tool hands
// CXXFLAGS to.
func versionDefine(version string) string {
	return fmt.Sprintf(`-DVERSION_INFO=\"%s\"`, version)
}

// appendFlag appends a space-separated flag to an existing flag string.
func appendFlag(cur, flag string) string {
	if cur == "" {
		return flag
	}
	return cur + " " + flag
}

// environMap turns KEY=VALUE pairs into a map. Later entries win, matching
// how os/exec treats duplicates.
func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ)+1)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// environList turns an environment map back into KEY=VALUE pairs.
func environList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for key, value := range env {
		list = append(list, key+"="+value)
	}
	return list
}

// findInterpreter returns the first interpreter on the PATH of env, or ""
// when there is none.
func findInterpreter(env map[string]string) string {
	for _, name := range interpreterNames {
		if path := lookPathIn(name, searchPath(env)); path != "" {
			return path
		}
	}
	return ""
}

// searchPath returns the PATH of env. Windows spells the key "Path".
func searchPath(env map[string]string) string {
	if path, ok := env["PATH"]; ok {
		return path
	}
	for key, value := range env {
		if strings.EqualFold(key, "PATH") {
			return value
		}
	}
	return ""
}

// lookPathIn is exec.LookPath against an explicit PATH value.
func lookPathIn(name, pathList string) string {
	candidates := []string{name}
	if runtime.GOOS == "windows" {
		candidates = []string{name + ".exe", name}
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
				continue
			}
			return path
		}
	}
	return ""
}
