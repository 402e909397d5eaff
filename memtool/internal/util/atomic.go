// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"io"
	"os"
	"path/filepath"
)

// AtomicFile is a temporary file that replaces the named file only when
// committed.
type AtomicFile struct {
	*os.File
	name string
	done bool
}

// CreateAtomic creates a temporary file in the directory of name.
func CreateAtomic(name string) (*AtomicFile, error) {
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{File: f, name: name}, nil
}

// Commit closes the temporary file and renames it to the target name.
func (f *AtomicFile) Commit() error {
	if f.done {
		return os.ErrClosed
	}
	f.done = true
	err := f.Chmod(0o644)
	if err == nil {
		err = f.Close()
	} else {
		f.Close()
	}
	if err == nil {
		err = os.Rename(f.File.Name(), f.name)
	}
	if err != nil {
		os.Remove(f.File.Name())
	}
	return err
}

// Abort closes and removes the temporary file. It does nothing after
// Commit so it can be deferred.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	f.Close()
	os.Remove(f.File.Name())
}

// WriteFileAtomic calls write with a temporary file and replaces the named
// file with it if write succeeds. The named file is left untouched
// otherwise.
func WriteFileAtomic(name string, write func(w io.Writer) error) error {
	f, err := CreateAtomic(name)
	if err != nil {
		return err
	}
	defer f.Abort()
	if err = write(f); err != nil {
		return err
	}
	return f.Commit()
}
