package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// LogDirName is the capture directory convention, relative to the
// project root. The wrapper that owns the adb stream writes there.
const LogDirName = ".droidtail/logs"

// Options are the raw invocation inputs.
type Options struct {
	LogPath   string // explicit log file; empty means discover
	Project   string // project root; empty means current directory
	NoPackage bool   // start with the package filter disabled
}

// Config is the resolved startup configuration.
type Config struct {
	ProjectRoot    string
	LogPath        string
	AppID          string // best-effort applicationId, may be empty
	PackageEnabled bool
}

// Resolve turns invocation options into a concrete configuration.
func Resolve(opts Options) (Config, error) {
	root := strings.TrimSpace(opts.Project)
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("resolve project root: %w", err)
	}

	cfg := Config{ProjectRoot: root}

	cfg.LogPath = strings.TrimSpace(opts.LogPath)
	if cfg.LogPath == "" {
		cfg.LogPath, err = newestLog(filepath.Join(root, LogDirName))
		if err != nil {
			return Config{}, err
		}
	}

	cfg.AppID = AppID(root)
	cfg.PackageEnabled = cfg.AppID != "" && !opts.NoPackage
	return cfg, nil
}

// newestLog picks the most recently modified *.log file in dir.
func newestLog(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("no log file given and none found in %s: %w", dir, err)
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(dir, entry.Name())
			newestMod = mod
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no log file given and no *.log in %s", dir)
	}
	return newest, nil
}

// Matches `applicationId "com.example.app"` and the Kotlin-DSL form
// `applicationId = "com.example.app"`.
var appIDRe = regexp.MustCompile(`(?m)^\s*applicationId\s*=?\s*["']([^"']+)["']`)

// AppID extracts the applicationId from the project's Gradle build files.
// Returns "" when nothing is found.
func AppID(root string) string {
	candidates := []string{
		filepath.Join(root, "app", "build.gradle"),
		filepath.Join(root, "app", "build.gradle.kts"),
		filepath.Join(root, "build.gradle"),
		filepath.Join(root, "build.gradle.kts"),
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if m := appIDRe.FindSubmatch(data); m != nil {
			return string(m[1])
		}
	}
	return ""
}
