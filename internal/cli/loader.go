package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Command error codes (E1xx). Syntax errors use the compiler's E0xx codes
// and runtime failures use the engine's codes.
const (
	ErrCodeGeneric     = "E100" // Generic/unknown error
	ErrCodeNotFound    = "E101" // Path not found
	ErrCodeNotFile     = "E102" // Path is a directory
	ErrCodeReadFailed  = "E103" // File read error
	ErrCodeScanError   = "E104" // Directory scan error
	ErrCodeWriteFailed = "E105" // File write error
)

// LoadError represents an error that occurred while reading input files.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ReadProgram reads the source of a program file.
func ReadProgram(path string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("program file not found: %s", path), Path: path, Err: err}
	}
	if err != nil {
		return "", &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("error accessing program file: %v", err), Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &LoadError{Code: ErrCodeNotFile, Message: fmt.Sprintf("not a file: %s", path), Path: path}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("error reading program file: %v", err), Path: path, Err: err}
	}
	return string(data), nil
}

// FindScenarioFiles finds all YAML scenario files under dir, sorted by path.
// A non-empty filter is a glob matched against the file name without its
// extension.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("scenarios directory not found: %s", dir), Path: dir, Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error accessing scenarios directory: %v", err), Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir), Path: dir}
	}
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("invalid filter pattern %q", filter), Err: err}
		}
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			if matched, _ := filepath.Match(filter, name); !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Path: dir, Err: err}
	}

	// WalkDir visits in lexical order already
	return files, nil
}
