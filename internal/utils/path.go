package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds the dictionary file whether the binary runs from the repo,
// an install dir or somewhere else on PATH.
type PathResolver struct {
	executableDir string
	workingDir    string
	configDir     string
}

// NewPathResolver creates a resolver. configDir may be empty.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execDir); err == nil {
		execDir = resolved
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not determine working directory: %v", err)
		cwd = ""
	}

	pr := &PathResolver{
		executableDir: execDir,
		workingDir:    cwd,
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, cwd=%s, configDir=%s", execDir, cwd, configDir)
	return pr, nil
}

// Candidates lists the places a dictionary path is looked for, in order:
// 1. the path itself when absolute
// 2. relative to the working directory
// 3. relative to the executable directory
// 4. the file name under <configDir>/data
func (pr *PathResolver) Candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	var candidates []string
	if pr.workingDir != "" {
		candidates = append(candidates, filepath.Join(pr.workingDir, path))
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, path))
	if pr.configDir != "" {
		candidates = append(candidates, filepath.Join(pr.configDir, "data", filepath.Base(path)))
	}
	return candidates
}

// ResolveFile returns the first candidate for path that is a regular file.
// When none exists it returns the first candidate so the caller's error names a real location.
func (pr *PathResolver) ResolveFile(path string) (string, error) {
	candidates := pr.Candidates(path)
	for _, candidate := range candidates {
		if stat, err := os.Stat(candidate); err == nil && stat.Mode().IsRegular() {
			log.Debugf("Found dictionary file: %s", candidate)
			return candidate, nil
		}
		log.Debugf("Dictionary candidate not found: %s", candidate)
	}
	return candidates[0], os.ErrNotExist
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}
