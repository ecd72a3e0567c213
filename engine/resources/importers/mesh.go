package importers

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/math"
	"github.com/emberengine/ember/engine/resources"
)

// MeshImporter parses Wavefront OBJ files into geometry payloads. Faces with
// more than three vertices are fan-triangulated; identical position/uv/normal
// triplets share one output vertex.
type MeshImporter struct{}

func (MeshImporter) Extensions() []string {
	return []string{"obj"}
}

type objIndex struct {
	position int
	texcoord int
	normal   int
}

func (MeshImporter) Import(data []byte, baseDir string, options resources.Options) (interface{}, error) {
	var (
		positions []math.Vec3
		texcoords []math.Vec2
		normals   []math.Vec3

		vertices []math.Vertex3D
		indices  []uint32
		seen     = map[objIndex]uint32{}
		name     = options["name"]
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
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
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, objError(lineNo, err)
			}
			positions = append(positions, v)
		case "vt":
			v, err := parseVec2(fields[1:])
			if err != nil {
				return nil, objError(lineNo, err)
			}
			texcoords = append(texcoords, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, objError(lineNo, err)
			}
			normals = append(normals, v)
		case "o", "g":
			if name == "" && len(fields) > 1 {
				name = fields[1]
			}
		case "f":
			if len(fields) < 4 {
				return nil, objError(lineNo, fmt.Errorf("face with %d vertices", len(fields)-1))
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := parseFaceRef(ref, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, objError(lineNo, err)
				}
				out, ok := seen[idx]
				if !ok {
					out = uint32(len(vertices))
					seen[idx] = out
					vertices = append(vertices, buildVertex(idx, positions, texcoords, normals))
				}
				face = append(face, out)
			}
			for i := 1; i < len(face)-1; i++ {
				indices = append(indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDecodeFailed, err)
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: obj contains no faces", core.ErrDecodeFailed)
	}

	return &resources.GeometryPayload{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}, nil
}

func objError(line int, err error) error {
	return fmt.Errorf("%w: obj line %d: %v", core.ErrDecodeFailed, line, err)
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: f[0], Y: f[1]}, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

// parseFaceRef handles the v, v/vt, v//vn and v/vt/vn forms. OBJ indices are
// one-based; negative values count back from the end of the list.
func parseFaceRef(ref string, np, nt, nn int) (objIndex, error) {
	parts := strings.Split(ref, "/")
	idx := objIndex{position: -1, texcoord: -1, normal: -1}

	resolve := func(s string, count int) (int, error) {
		i, err := strconv.Atoi(s)
		if err != nil {
			return -1, err
		}
		if i < 0 {
			i = count + i
		} else {
			i--
		}
		if i < 0 || i >= count {
			return -1, fmt.Errorf("index %s out of range", s)
		}
		return i, nil
	}

	var err error
	if idx.position, err = resolve(parts[0], np); err != nil {
		return idx, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if idx.texcoord, err = resolve(parts[1], nt); err != nil {
			return idx, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if idx.normal, err = resolve(parts[2], nn); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

func buildVertex(idx objIndex, positions []math.Vec3, texcoords []math.Vec2, normals []math.Vec3) math.Vertex3D {
	v := math.Vertex3D{
		Position: positions[idx.position],
		Colour:   math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
	}
	if idx.texcoord >= 0 {
		v.Texcoord = texcoords[idx.texcoord]
	}
	if idx.normal >= 0 {
		v.Normal = normals[idx.normal]
	}
	return v
}
