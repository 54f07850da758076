/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"

	"jacobin/util"
)

// ClassSource is one root of the classpath: a directory of loose .class
// files or an archive (jar/zip/jmod), one entry in the ordered list of
// class-source roots searched by the loader.
type ClassSource interface {
	// Find returns the raw bytes of the named class (binary name, slash
	// separated) if this root has it.
	Find(binaryName string) ([]byte, bool, error)
	String() string
}

// dirRoot is a directory-tree class source. Reads are done through
// mmap-go rather than a plain os.ReadFile/ioutil read; the mapped bytes
// are copied into a fresh slice before the mapping is released, so the
// caller owns the returned buffer.
type dirRoot struct {
	base string
}

func NewDirRoot(base string) *dirRoot {
	return &dirRoot{base: base}
}

func (d *dirRoot) String() string { return d.base }

func (d *dirRoot) Find(binaryName string) ([]byte, bool, error) {
	path := filepath.Join(d.base, util.ConvertToPlatformPathSeparators(binaryName)+".class")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, false, err
	}
	if fi.Size() == 0 {
		return []byte{}, true, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, false, err
	}
	defer m.Unmap()

	out := make([]byte, len(m))
	copy(out, m)
	return out, true, nil
}

// Classpath is the ordered sequence of ClassSource roots searched by
// Load (JVMS §5.3 Creation and Loading).
type Classpath struct {
	roots []ClassSource
}

func NewClasspath(entries []string) (*Classpath, error) {
	cp := &Classpath{}
	for _, e := range entries {
		if e == "" {
			continue
		}
		if util.IsArchive(e) {
			jr, err := NewArchiveRoot(e)
			if err != nil {
				return nil, err
			}
			cp.roots = append(cp.roots, jr)
		} else {
			cp.roots = append(cp.roots, NewDirRoot(e))
		}
	}
	return cp, nil
}

func (cp *Classpath) Find(binaryName string) ([]byte, error) {
	for _, r := range cp.roots {
		b, ok, err := r.Find(binaryName)
		if err != nil {
			return nil, err
		}
		if ok {
			return b, nil
		}
	}
	return nil, &ClassNotFoundError{ClassName: binaryName}
}
