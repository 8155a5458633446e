// FILE: lixenwraith/typedenv/discovery.go
package typedenv

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic source file discovery
type FileDiscoveryOptions struct {
	// File names to try in each directory (in order)
	Names []string

	// Custom search paths (searched first)
	Paths []string

	// Environment variable to check for an explicit path
	EnvVar string

	// Application name used for XDG directories
	AppName string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Names:         []string{".env", appName + ".env"},
		EnvVar:        strings.ToUpper(appName) + "_ENV_FILE",
		AppName:       appName,
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverFile returns the first existing source file, or "" if none is found
func DiscoverFile(opts FileDiscoveryOptions) string {
	// Explicit path wins
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG && opts.AppName != "" {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.AppName)...)
	}

	for _, dir := range searchPaths {
		for _, name := range opts.Names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}

	return ""
}

// WithFileDiscovery sets the source file to the first discovered one.
// Finding nothing leaves the builder unchanged.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if path := DiscoverFile(opts); path != "" {
		b.file = path
	}
	return b
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	// XDG_CONFIG_HOME
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	// XDG_CONFIG_DIRS
	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
