// Package git detects git repository metadata for project registration.
package git

import (
	"os"
	"os/exec"
	"strings"
)

// Info describes the repository a directory belongs to.
type Info struct {
	IsRepo bool
	Root   string
	Branch string
}

// Detect returns repository information for dir. If dir is empty the current
// working directory is used. A directory outside any repository yields
// Info{IsRepo: false} and no error.
func Detect(dir string) (*Info, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return &Info{}, nil
		}
	}

	root, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil || root == "" {
		return &Info{}, nil
	}

	branch, err := runGit(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return &Info{}, nil
	}

	return &Info{IsRepo: true, Root: root, Branch: branch}, nil
}

// runGit executes a git command and returns the trimmed output. Stderr is
// suppressed to avoid noise outside repositories.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Stderr = nil

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
