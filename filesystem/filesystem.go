// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library so that downloads, logs and configuration can be
// redirected to an in-memory backend in tests.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// Set replaces the backend with an arbitrary afero filesystem.
func Set(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}
