package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/Faultbox/brickforge/pkg/formats"
	"github.com/Faultbox/brickforge/pkg/mesh"
)

var gzipMagic = []byte{0x1f, 0x8b}

// loadMesh reads a mesh file, picking the parser from the file extension
// (a trailing .gz is ignored for the extension check).
func loadMesh(path string) (*mesh.Mesh, error) {
	name := strings.ToLower(strings.TrimSuffix(path, ".gz"))
	ext := filepath.Ext(name)

	if ext == ".gltf" && !strings.HasSuffix(strings.ToLower(path), ".gz") {
		// External buffer URIs resolve relative to the document file.
		return formats.ParseGLTFFile(path)
	}

	data, err := readMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	switch ext {
	case ".glb":
		return formats.ParseGLB(data)
	case ".gltf":
		return formats.ParseGLTF(data)
	default:
		return formats.ParseOBJ(data)
	}
}

// readMaybeGzip reads a file, transparently decompressing gzip content.
func readMaybeGzip(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return out, nil
}

// writeMaybeGzip writes a file, gzip-compressing when the path ends in .gz.
func writeMaybeGzip(path string, data []byte) error {
	if !strings.HasSuffix(path, ".gz") {
		return os.WriteFile(path, data, 0o644)
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
