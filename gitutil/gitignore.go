package gitutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Prompt asks the user to pick one of options. Tests replace it.
var Prompt = func(message string, options []string) (string, error) {
	var choice string
	err := survey.AskOne(&survey.Select{Message: message, Options: options}, &choice)
	return choice, err
}

// IsIgnored checks if a file path is covered by .gitignore
func IsIgnored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return git(filepath.Dir(abs), "check-ignore", "-q", abs).Run() == nil
}

// IsGitRepo checks if dir is inside a git repository
func IsGitRepo(dir string) bool {
	return git(dir, "rev-parse", "--git-dir").Run() == nil
}

// EnsureGitignored checks if a generated file is gitignored, and if not,
// prompts the user to add the file or its directory to the repository's
// .gitignore.
func EnsureGitignored(filePath string) error {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}
	dir := filepath.Dir(abs)

	if !IsGitRepo(dir) || IsIgnored(abs) {
		return nil
	}

	root, err := gitRoot(dir)
	if err != nil {
		return fmt.Errorf("failed to find git root: %w", err)
	}

	rel, err := relativeTo(root, abs)
	if err != nil {
		return err
	}
	relDir := filepath.ToSlash(filepath.Dir(rel))

	addFile := fmt.Sprintf("Add file (%s)", rel)
	addDir := fmt.Sprintf("Add directory (%s/)", relDir)
	choice, err := Prompt(
		fmt.Sprintf("File %q is not in .gitignore. Add to .gitignore?", filePath),
		[]string{addFile, addDir, "Skip"},
	)
	if err != nil {
		return fmt.Errorf("gitignore prompt failed: %w", err)
	}

	var entry string
	switch choice {
	case addFile:
		entry = rel
	case addDir:
		entry = relDir + "/"
	default:
		return nil
	}

	if err := appendLine(filepath.Join(root, ".gitignore"), entry); err != nil {
		return err
	}

	fmt.Printf("Added %q to .gitignore\n", entry)
	return nil
}

// appendLine appends entry to path, starting on a new line
func appendLine(path, entry string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .gitignore: %w", err)
	}

	prefix := ""
	if len(content) > 0 && content[len(content)-1] != '\n' {
		prefix = "\n"
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(prefix + entry + "\n"); err != nil {
		return fmt.Errorf("failed to write to .gitignore: %w", err)
	}
	return nil
}

func relativeTo(root, path string) (string, error) {
	// git reports the root with symlinks resolved
	resolved, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	rel, err := filepath.Rel(root, filepath.Join(resolved, filepath.Base(path)))
	if err != nil {
		return "", fmt.Errorf("%s is outside of %s: %w", path, root, err)
	}
	return filepath.ToSlash(rel), nil
}

func gitRoot(dir string) (string, error) {
	output, err := git(dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(strings.TrimSpace(string(output)))
}

func git(dir string, args ...string) *exec.Cmd {
	return exec.Command("git", append([]string{"-C", dir}, args...)...)
}
