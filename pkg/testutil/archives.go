package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

// Entry is one member of a fixture archive. Names ending in "/" are directories.
type Entry struct {
	Name string
	Body string
	Mode os.FileMode
	Link string

	// HardLink names an earlier member; tar only
	HardLink string
}

func (e Entry) isDir() bool {
	return strings.HasSuffix(e.Name, "/")
}

func (e Entry) perm() os.FileMode {
	if e.Mode != 0 {
		return e.Mode
	}
	if e.isDir() {
		return 0755
	}
	return 0644
}

// BundleEntries returns the layout of a branch archive for repo-branch
func BundleEntries(root string) []Entry {
	return []Entry{
		{Name: root + "/"},
		{Name: root + "/package.json", Body: `{"name":"` + root + `"}`},
		{Name: root + "/index.js", Body: "module.exports = {}\n"},
	}
}

// RuntimeEntries returns the layout of a runtime distribution rooted at root
func RuntimeEntries(root string) []Entry {
	return []Entry{
		{Name: root + "/"},
		{Name: root + "/bin/"},
		{Name: root + "/bin/node", Body: "#!/bin/sh\n", Mode: 0755},
		{Name: root + "/lib/node_modules/npm/bin/npm-cli.js", Body: "// npm\n", Mode: 0755},
		{Name: root + "/bin/npm", Link: "../lib/node_modules/npm/bin/npm-cli.js"},
	}
}

// ZipBytes builds a zip archive from entries
func ZipBytes(t *testing.T, entries []Entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.Name, Method: zip.Deflate}
		mode := e.perm()
		if e.isDir() {
			mode |= os.ModeDir
		}
		body := e.Body
		if e.Link != "" {
			mode |= os.ModeSymlink
			body = e.Link
		}
		hdr.SetMode(mode)

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("zip header %s: %v", e.Name, err)
		}
		if !e.isDir() {
			if _, err := w.Write([]byte(body)); err != nil {
				t.Fatalf("zip write %s: %v", e.Name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// TarBytes builds an uncompressed tar stream from entries
func TarBytes(t *testing.T, entries []Entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: int64(e.perm())}
		switch {
		case e.isDir():
			hdr.Typeflag = tar.TypeDir
		case e.Link != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.Link
		case e.HardLink != "":
			hdr.Typeflag = tar.TypeLink
			hdr.Linkname = e.HardLink
		default:
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("tar header %s: %v", e.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatalf("tar write %s: %v", e.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	return buf.Bytes()
}

// TarXzBytes builds an xz-compressed tar archive
func TarXzBytes(t *testing.T, entries []Entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := w.Write(TarBytes(t, entries)); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

// TarGzBytes builds a gzip-compressed tar archive
func TarGzBytes(t *testing.T, entries []Entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(TarBytes(t, entries)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}
