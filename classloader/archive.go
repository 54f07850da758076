/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"archive/zip"
	"io"
)

// archiveRoot is a jar/zip/jmod class source. The JVMS doesn't mandate an
// archive format, but every real classpath entry that isn't a directory is
// a zip-compatible archive, so reuse the standard library's DEFLATE
// decoder rather than reimplement one.
type archiveRoot struct {
	path string
	zr   *zip.ReadCloser
	byName map[string]*zip.File
}

func NewArchiveRoot(path string) (*archiveRoot, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	ar := &archiveRoot{path: path, zr: zr, byName: map[string]*zip.File{}}
	for _, f := range zr.File {
		ar.byName[f.Name] = f
	}
	return ar, nil
}

func (a *archiveRoot) String() string { return a.path }

func (a *archiveRoot) Find(binaryName string) ([]byte, bool, error) {
	f, ok := a.byName[binaryName+".class"]
	if !ok {
		return nil, false, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false, err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// MainClassFromJar opens the jar at path and reads the Main-Class attribute
// out of its META-INF/MANIFEST.MF, for the CLI's `-jar` launch mode: the
// jar both supplies the classpath root and names its own main class.
func MainClassFromJar(path string) (string, error) {
	ar, err := NewArchiveRoot(path)
	if err != nil {
		return "", err
	}
	defer ar.zr.Close()
	return ar.MainClassFromManifest()
}

// MainClassFromManifest reads the Main-Class attribute out of
// META-INF/MANIFEST.MF, for `jacobin run -jar`.
func (a *archiveRoot) MainClassFromManifest() (string, error) {
	f, ok := a.byName["META-INF/MANIFEST.MF"]
	if !ok {
		return "", &ClassNotFoundError{ClassName: "META-INF/MANIFEST.MF"}
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return parseMainClassAttr(b), nil
}

func parseMainClassAttr(manifest []byte) string {
	const key = "Main-Class:"
	lines := splitManifestLines(manifest)
	for _, line := range lines {
		if len(line) > len(key) && line[:len(key)] == key {
			v := line[len(key):]
			for len(v) > 0 && (v[0] == ' ' || v[0] == '\t') {
				v = v[1:]
			}
			return v
		}
	}
	return ""
}

// splitManifestLines splits on CRLF/CR/LF without pulling in bufio, since
// manifest files are tiny and this runs once per jar launch.
func splitManifestLines(b []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(b); i++ {
		if b[i] == '\n' || b[i] == '\r' {
			lines = append(lines, string(b[start:i]))
			if b[i] == '\r' && i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(b) {
		lines = append(lines, string(b[start:]))
	}
	return lines
}
