// Package meshio loads triangle meshes from Wavefront OBJ files.
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/meshforge/scatter/pkg/geom"
	"github.com/meshforge/scatter/pkg/scatter"
)

// OBJ format errors.
var (
	ErrNoGeometry      = errors.New("obj: no usable faces")
	ErrBadVertex       = errors.New("obj: malformed vertex")
	ErrBadFace         = errors.New("obj: malformed face")
	ErrIndexOutOfRange = errors.New("obj: vertex index out of range")
)

// LoadOBJ reads an OBJ file into a scatter mesh.
func LoadOBJ(path string) (*scatter.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeOBJ(f)
}

// DecodeOBJ parses OBJ geometry from a reader. Only v and f records are
// used; texture coordinates, normals, groups and materials are skipped.
// Quads and larger polygons are fanned into triangles.
func DecodeOBJ(r io.Reader) (*scatter.Mesh, error) {
	var vertices []geom.Vec3
	var faces [][]int

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)
		case "f":
			face, err := parseFace(fields[1:], len(vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			faces = append(faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(faces) == 0 {
		return nil, ErrNoGeometry
	}
	return scatter.NewMeshFromFaces(vertices, faces), nil
}

func parseVertex(fields []string) (geom.Vec3, error) {
	if len(fields) < 3 {
		return geom.Vec3{}, ErrBadVertex
	}
	var coords [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("%w: %q", ErrBadVertex, fields[i])
		}
		coords[i] = v
	}
	return geom.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// parseFace resolves a face record to zero-based vertex indices. OBJ
// indices are 1-based; negative indices count back from the last vertex
// defined so far.
func parseFace(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, ErrBadFace
	}
	face := make([]int, 0, len(fields))
	for _, field := range fields {
		// v, v/vt, v/vt/vn and v//vn all start with the vertex index.
		idxStr, _, _ := strings.Cut(field, "/")
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx == 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadFace, field)
		}
		if idx < 0 {
			idx = vertexCount + idx
		} else {
			idx--
		}
		if idx < 0 || idx >= vertexCount {
			return nil, fmt.Errorf("%w: %q", ErrIndexOutOfRange, field)
		}
		face = append(face, idx)
	}
	return face, nil
}
