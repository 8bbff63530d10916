package stormext

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var nativeLibraryExtensions = []string{".so", ".pyd", ".dylib", ".dll"}

// ExtensionOutputDir returns the directory a compiled module named name is
// placed in under libDir. The package part of the dotted name becomes the
// directory path: "stormpy.core" lands in <libDir>/stormpy.
func ExtensionOutputDir(libDir, name string) string {
	parts := strings.Split(name, ".")
	dir := filepath.Join(append([]string{libDir}, parts[:len(parts)-1]...)...)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// moduleBaseName returns the last component of a dotted module name.
func moduleBaseName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// workDirFor returns the work directory of sourceDir under buildTemp.
//
// The directory name carries the source directory's base name for
// readability and a hash of its full path so that two source directories
// with the same base name never share build state.
func workDirFor(buildTemp, sourceDir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(sourceDir)))
	base := filepath.Base(filepath.Clean(sourceDir))
	if base == string(filepath.Separator) || base == "." {
		base = "root"
	}
	return filepath.Join(buildTemp, fmt.Sprintf("%s-%s", base, hex.EncodeToString(sum[:4])))
}

// ensureDir creates dir if it does not exist and reports whether it did.
func ensureDir(dir string) (created bool, err error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

// findBuiltExtensions locates the compiled modules for the target name in
// outputDir. Compiled modules carry ABI tags
// (core.cpython-312-x86_64-linux-gnu.so), so any native library whose file
// name starts with "<base>." matches.
func findBuiltExtensions(outputDir, name string) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", outputDir, err)
	}

	prefix := moduleBaseName(name) + "."
	var extensions []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		filename := entry.Name()
		if !strings.HasPrefix(filename, prefix) {
			continue
		}
		if !MatchesExtension(filename, nativeLibraryExtensions...) {
			continue
		}
		extensions = append(extensions, filepath.Join(outputDir, filename))
	}

	sort.Strings(extensions)
	return extensions, nil
}
