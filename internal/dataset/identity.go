// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package dataset

import (
	"fmt"
	"os"
	"time"
)

// FileIdentity identifies one version of the dataset file.
type FileIdentity struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Stat returns the identity of the file at path.
func Stat(path string) (FileIdentity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileIdentity{}, fmt.Errorf("stat dataset: %w", err)
	}
	if info.IsDir() {
		return FileIdentity{}, fmt.Errorf("stat dataset: %s is a directory", path)
	}
	return FileIdentity{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime().UTC(),
	}, nil
}

// Equal reports whether both identities describe the same file version.
func (f FileIdentity) Equal(other FileIdentity) bool {
	return f.Path == other.Path && f.Size == other.Size && f.ModTime.Equal(other.ModTime)
}
