// Package artifact holds helpers shared by the dataset and model loaders.
// Artifacts are read once at process start and a failure to read them is
// fatal for the owning service.
package artifact

// artifact module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmpty is returned when artifact file has no content
var ErrEmpty = errors.New("empty artifact")

// LoadError represents failure to load dataset or model artifact
type LoadError struct {
	Kind string // artifact kind, e.g. dataset or model
	Path string // artifact file path
	Err  error  // underlying error
}

// Error implements error interface
func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load %s artifact %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns underlying error
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Wrap wraps given error into LoadError, nil errors are passed through
func Wrap(kind, path string, err error) error {
	if err == nil {
		return nil
	}
	var lerr *LoadError
	if errors.As(err, &lerr) {
		return err
	}
	return &LoadError{Kind: kind, Path: path, Err: err}
}

// ReadFile reads content of artifact file
func ReadFile(kind, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, Wrap(kind, path, err)
	}
	if len(data) == 0 {
		return nil, Wrap(kind, path, ErrEmpty)
	}
	return data, nil
}
