// Package formats provides parsers and writers for mesh interchange formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrNoGeometry     = errors.New("obj: no vertices or faces found")
	ErrBadVertex      = errors.New("obj: malformed vertex statement")
	ErrBadFace        = errors.New("obj: malformed face statement")
	ErrFaceIndexRange = errors.New("obj: face index out of range")
)

// OBJ holds the geometry of a Wavefront OBJ file: flat x,y,z positions and a
// triangulated index buffer. Texture coordinates, normals, and grouping
// statements are ignored on read; polygons with more than three corners are
// fan-triangulated.
type OBJ struct {
	Positions []float32
	Indices   []uint32
}

// LoadOBJ reads and parses an OBJ file.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOBJ(data)
}

// ParseOBJ parses OBJ data from a byte slice.
func ParseOBJ(data []byte) (*OBJ, error) {
	return ReadOBJ(bytes.NewReader(data))
}

// ReadOBJ parses OBJ data from a reader.
func ReadOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
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
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrBadVertex)
			}
			for _, f := range fields[1:4] {
				v, err := strconv.ParseFloat(f, 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrBadVertex, err)
				}
				obj.Positions = append(obj.Positions, float32(v))
			}
		case "f":
			if err := obj.parseFace(fields[1:], lineNo); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(obj.Positions) == 0 || len(obj.Indices) == 0 {
		return nil, ErrNoGeometry
	}
	return obj, nil
}

// parseFace appends a triangulated face. Corners may be "v", "v/vt",
// "v//vn", or "v/vt/vn"; only the position index is used. Indices are
// 1-based, negative values count back from the current vertex list.
func (o *OBJ) parseFace(corners []string, lineNo int) error {
	if len(corners) < 3 {
		return fmt.Errorf("line %d: %w", lineNo, ErrBadFace)
	}

	vertCount := len(o.Positions) / 3
	idx := make([]uint32, len(corners))
	for i, c := range corners {
		ref := c
		if slash := strings.IndexByte(c, '/'); slash >= 0 {
			ref = c[:slash]
		}
		v, err := strconv.Atoi(ref)
		if err != nil || v == 0 {
			return fmt.Errorf("line %d: %w", lineNo, ErrBadFace)
		}
		if v < 0 {
			v += vertCount + 1
		}
		if v < 1 || v > vertCount {
			return fmt.Errorf("line %d: %w", lineNo, ErrFaceIndexRange)
		}
		idx[i] = uint32(v - 1)
	}

	// Fan triangulation for quads and larger polygons.
	for i := 1; i < len(idx)-1; i++ {
		o.Indices = append(o.Indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

// WriteOBJ writes positions and faces as OBJ text.
func WriteOBJ(w io.Writer, positions []float32, indices []uint32) error {
	bw := bufio.NewWriter(w)
	for i := 0; i+2 < len(positions); i += 3 {
		fmt.Fprintf(bw, "v %g %g %g\n", positions[i], positions[i+1], positions[i+2])
	}
	for i := 0; i+2 < len(indices); i += 3 {
		fmt.Fprintf(bw, "f %d %d %d\n", indices[i]+1, indices[i+1]+1, indices[i+2]+1)
	}
	return bw.Flush()
}

// SaveOBJ writes positions and faces to a file.
func SaveOBJ(path string, positions []float32, indices []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, positions, indices); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
