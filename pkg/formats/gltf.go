package formats

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/brickforge/pkg/geom"
	"github.com/Faultbox/brickforge/pkg/mesh"
)

// glTF 2.0 binary container and accessor constants.
const (
	glbMagic     = 0x46546C67 // "glTF"
	glbChunkJSON = 0x4E4F534A
	glbChunkBIN  = 0x004E4942

	componentUByte  = 5121
	componentUShort = 5123
	componentUInt   = 5125
	componentFloat  = 5126

	modeTriangles = 4

	maxNodeDepth = 256
)

// Malformed container errors. Unlike OBJ, a structurally broken binary file
// cannot be partially recovered, so these are reported instead of skipped.
var (
	ErrMalformedGLB  = errors.New("malformed glb container")
	ErrMalformedGLTF = errors.New("malformed gltf document")
)

type gltfDocument struct {
	Scene       *int             `json:"scene"`
	Scenes      []gltfScene      `json:"scenes"`
	Nodes       []gltfNode       `json:"nodes"`
	Meshes      []gltfMesh       `json:"meshes"`
	Accessors   []gltfAccessor   `json:"accessors"`
	BufferViews []gltfBufferView `json:"bufferViews"`
	Buffers     []gltfBuffer     `json:"buffers"`
}

type gltfScene struct {
	Nodes []int `json:"nodes"`
}

type gltfNode struct {
	Mesh        *int      `json:"mesh"`
	Children    []int     `json:"children"`
	Matrix      []float64 `json:"matrix"`
	Translation []float64 `json:"translation"`
	Rotation    []float64 `json:"rotation"`
	Scale       []float64 `json:"scale"`
}

type gltfMesh struct {
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices"`
	Mode       *int           `json:"mode"`
}

type gltfAccessor struct {
	BufferView    *int   `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset"`
	ComponentType int    `json:"componentType"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
}

type gltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride"`
}

type gltfBuffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri"`
}

// ParseGLTF parses a JSON glTF document into a triangle soup. Buffers must
// be embedded as data URIs; use ParseGLTFFile for documents with external
// buffer files.
func ParseGLTF(data []byte) (*mesh.Mesh, error) {
	return parseGLTF(data, nil, nil)
}

// ParseGLB parses a binary glTF container.
func ParseGLB(data []byte) (*mesh.Mesh, error) {
	doc, bin, err := splitGLB(data)
	if err != nil {
		return nil, err
	}
	return parseGLTF(doc, bin, nil)
}

// ParseGLTFFile parses a .gltf or .glb file from disk. External buffer URIs
// resolve relative to the document's directory.
func ParseGLTFFile(path string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glTF file: %w", err)
	}
	if len(data) >= 4 && binary.LittleEndian.Uint32(data) == glbMagic {
		return ParseGLB(data)
	}
	dir := filepath.Dir(path)
	resolve := func(uri string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, filepath.FromSlash(uri)))
	}
	return parseGLTF(data, nil, resolve)
}

// splitGLB extracts the JSON and binary chunks from a GLB container.
func splitGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	if len(data) < 12 || binary.LittleEndian.Uint32(data) != glbMagic {
		return nil, nil, ErrMalformedGLB
	}
	offset := 12
	for offset+8 <= len(data) {
		length := int(binary.LittleEndian.Uint32(data[offset:]))
		kind := binary.LittleEndian.Uint32(data[offset+4:])
		offset += 8
		if length < 0 || offset+length > len(data) {
			return nil, nil, fmt.Errorf("%w: chunk overruns file", ErrMalformedGLB)
		}
		chunk := data[offset : offset+length]
		switch kind {
		case glbChunkJSON:
			jsonChunk = chunk
		case glbChunkBIN:
			binChunk = chunk
		}
		offset += length
	}
	if jsonChunk == nil {
		return nil, nil, fmt.Errorf("%w: missing JSON chunk", ErrMalformedGLB)
	}
	return jsonChunk, binChunk, nil
}

func parseGLTF(jsonData, bin []byte, resolve func(string) ([]byte, error)) (*mesh.Mesh, error) {
	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGLTF, err)
	}
	buffers, err := loadGLTFBuffers(&doc, bin, resolve)
	if err != nil {
		return nil, err
	}

	b := &gltfBuilder{
		doc:        &doc,
		buffers:    buffers,
		out:        &mesh.Mesh{},
		hasNormals: true,
		hasUVs:     true,
	}
	if len(doc.Scenes) > 0 {
		scene := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			scene = *doc.Scene
		}
		for _, root := range doc.Scenes[scene].Nodes {
			if err := b.addNode(root, identityMat4, 0); err != nil {
				return nil, err
			}
		}
	} else {
		// No scene graph: take every mesh in place.
		for i := range doc.Meshes {
			if err := b.addMesh(i, identityMat4); err != nil {
				return nil, err
			}
		}
	}

	out := b.out
	if !b.hasNormals || len(out.Normals) != len(out.Positions) {
		out.Normals = nil
	}
	if !b.hasUVs || len(out.UVs) != len(out.Positions) {
		out.UVs = nil
	}
	out.ComputeBounds()
	return out, nil
}

// loadGLTFBuffers materializes each buffer: the GLB binary chunk, a base64
// data URI, or an external file through resolve.
func loadGLTFBuffers(doc *gltfDocument, bin []byte, resolve func(string) ([]byte, error)) ([][]byte, error) {
	buffers := make([][]byte, len(doc.Buffers))
	for i, b := range doc.Buffers {
		switch {
		case b.URI == "":
			if bin == nil {
				return nil, fmt.Errorf("%w: buffer %d has no URI and no binary chunk", ErrMalformedGLTF, i)
			}
			buffers[i] = bin
		case strings.HasPrefix(b.URI, "data:"):
			comma := strings.IndexByte(b.URI, ',')
			if comma < 0 {
				return nil, fmt.Errorf("%w: buffer %d has a malformed data URI", ErrMalformedGLTF, i)
			}
			decoded, err := base64.StdEncoding.DecodeString(b.URI[comma+1:])
			if err != nil {
				return nil, fmt.Errorf("%w: buffer %d: %v", ErrMalformedGLTF, i, err)
			}
			buffers[i] = decoded
		default:
			if resolve == nil {
				return nil, fmt.Errorf("%w: buffer %d references external data %q", ErrMalformedGLTF, i, b.URI)
			}
			data, err := resolve(b.URI)
			if err != nil {
				return nil, fmt.Errorf("reading buffer %q: %w", b.URI, err)
			}
			buffers[i] = data
		}
	}
	return buffers, nil
}

// gltfBuilder accumulates world-space triangles while walking the scene graph.
type gltfBuilder struct {
	doc     *gltfDocument
	buffers [][]byte
	out     *mesh.Mesh

	hasNormals bool
	hasUVs     bool
}

func (b *gltfBuilder) addNode(idx int, parent mat4, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("%w: node graph too deep", ErrMalformedGLTF)
	}
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("%w: node %d out of range", ErrMalformedGLTF, idx)
	}
	node := b.doc.Nodes[idx]
	world := parent.mul(nodeMatrix(node))
	if node.Mesh != nil {
		if err := b.addMesh(*node.Mesh, world); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := b.addNode(child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (b *gltfBuilder) addMesh(idx int, world mat4) error {
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return fmt.Errorf("%w: mesh %d out of range", ErrMalformedGLTF, idx)
	}
	for _, prim := range b.doc.Meshes[idx].Primitives {
		// Points, lines and strips carry no solid surface.
		if prim.Mode != nil && *prim.Mode != modeTriangles {
			continue
		}
		posIdx, ok := prim.Attributes["POSITION"]
		if !ok {
			continue
		}
		positions, err := b.readVec3(posIdx)
		if err != nil {
			return err
		}
		var normals []geom.Vec3
		if ni, ok := prim.Attributes["NORMAL"]; ok {
			if normals, err = b.readVec3(ni); err != nil {
				return err
			}
		}
		var uvs []geom.Vec2
		if ti, ok := prim.Attributes["TEXCOORD_0"]; ok {
			if uvs, err = b.readVec2(ti); err != nil {
				return err
			}
		}
		indices, err := b.readIndices(prim.Indices, len(positions))
		if err != nil {
			return err
		}
		for _, vi := range indices {
			if int(vi) >= len(positions) {
				return fmt.Errorf("%w: vertex index %d out of range", ErrMalformedGLTF, vi)
			}
			b.out.Positions = append(b.out.Positions, world.transformPoint(positions[vi]))
			if int(vi) < len(normals) {
				b.out.Normals = append(b.out.Normals, world.transformDirection(normals[vi]))
			} else {
				b.hasNormals = false
			}
			if int(vi) < len(uvs) {
				b.out.UVs = append(b.out.UVs, uvs[vi])
			} else {
				b.hasUVs = false
			}
		}
	}
	return nil
}

// accessorData resolves an accessor to its raw bytes, returning the slice
// starting at the first element together with the element stride and count.
func (b *gltfBuilder) accessorData(idx int, wantType string, elemSize int) ([]byte, int, int, error) {
	doc := b.doc
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, 0, 0, fmt.Errorf("%w: accessor %d out of range", ErrMalformedGLTF, idx)
	}
	acc := doc.Accessors[idx]
	if acc.Type != wantType {
		return nil, 0, 0, fmt.Errorf("%w: accessor %d is %s, want %s", ErrMalformedGLTF, idx, acc.Type, wantType)
	}
	if acc.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("%w: accessor %d has no buffer view", ErrMalformedGLTF, idx)
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("%w: buffer view %d out of range", ErrMalformedGLTF, *acc.BufferView)
	}
	view := doc.BufferViews[*acc.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(b.buffers) {
		return nil, 0, 0, fmt.Errorf("%w: buffer %d out of range", ErrMalformedGLTF, view.Buffer)
	}
	buf := b.buffers[view.Buffer]
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	if acc.Count < 0 || start < 0 || stride < elemSize {
		return nil, 0, 0, fmt.Errorf("%w: accessor %d has an invalid layout", ErrMalformedGLTF, idx)
	}
	end := start
	if acc.Count > 0 {
		end = start + stride*(acc.Count-1) + elemSize
	}
	if end > len(buf) {
		return nil, 0, 0, fmt.Errorf("%w: accessor %d overruns its buffer", ErrMalformedGLTF, idx)
	}
	return buf[start:], stride, acc.Count, nil
}

func (b *gltfBuilder) readVec3(idx int) ([]geom.Vec3, error) {
	data, stride, count, err := b.accessorData(idx, "VEC3", 12)
	if err != nil {
		return nil, err
	}
	if b.doc.Accessors[idx].ComponentType != componentFloat {
		return nil, fmt.Errorf("%w: accessor %d is not float32", ErrMalformedGLTF, idx)
	}
	out := make([]geom.Vec3, count)
	for i := range out {
		e := data[i*stride:]
		out[i] = geom.Vec3{
			X: float64(math.Float32frombits(binary.LittleEndian.Uint32(e))),
			Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(e[4:]))),
			Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(e[8:]))),
		}
	}
	return out, nil
}

func (b *gltfBuilder) readVec2(idx int) ([]geom.Vec2, error) {
	data, stride, count, err := b.accessorData(idx, "VEC2", 8)
	if err != nil {
		return nil, err
	}
	if b.doc.Accessors[idx].ComponentType != componentFloat {
		return nil, fmt.Errorf("%w: accessor %d is not float32", ErrMalformedGLTF, idx)
	}
	out := make([]geom.Vec2, count)
	for i := range out {
		e := data[i*stride:]
		out[i] = geom.Vec2{
			X: float64(math.Float32frombits(binary.LittleEndian.Uint32(e))),
			Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(e[4:]))),
		}
	}
	return out, nil
}

// readIndices reads an index accessor, or produces the sequential indices of
// a non-indexed primitive when idx is nil.
func (b *gltfBuilder) readIndices(idx *int, vertexCount int) ([]uint32, error) {
	if idx == nil {
		out := make([]uint32, vertexCount)
		for i := range out {
			out[i] = uint32(i)
		}
		return out, nil
	}
	if *idx < 0 || *idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d out of range", ErrMalformedGLTF, *idx)
	}
	var elemSize int
	componentType := b.doc.Accessors[*idx].ComponentType
	switch componentType {
	case componentUByte:
		elemSize = 1
	case componentUShort:
		elemSize = 2
	case componentUInt:
		elemSize = 4
	default:
		return nil, fmt.Errorf("%w: accessor %d has index component type %d", ErrMalformedGLTF, *idx, componentType)
	}
	data, stride, count, err := b.accessorData(*idx, "SCALAR", elemSize)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		e := data[i*stride:]
		switch componentType {
		case componentUByte:
			out[i] = uint32(e[0])
		case componentUShort:
			out[i] = uint32(binary.LittleEndian.Uint16(e))
		case componentUInt:
			out[i] = binary.LittleEndian.Uint32(e)
		}
	}
	return out, nil
}

// mat4 is a column-major 4x4 transform, matching the glTF matrix layout.
type mat4 [16]float64

var identityMat4 = mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func (m mat4) mul(n mat4) mat4 {
	var out mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = s
		}
	}
	return out
}

func (m mat4) transformPoint(v geom.Vec3) geom.Vec3 {
	return geom.Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

func (m mat4) transformDirection(v geom.Vec3) geom.Vec3 {
	return geom.Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// nodeMatrix returns a node's local transform: its explicit matrix, or the
// composition translation * rotation * scale.
func nodeMatrix(n gltfNode) mat4 {
	if len(n.Matrix) == 16 {
		var m mat4
		copy(m[:], n.Matrix)
		return m
	}

	sx, sy, sz := 1.0, 1.0, 1.0
	if len(n.Scale) == 3 {
		sx, sy, sz = n.Scale[0], n.Scale[1], n.Scale[2]
	}
	qx, qy, qz, qw := 0.0, 0.0, 0.0, 1.0
	if len(n.Rotation) == 4 {
		qx, qy, qz, qw = n.Rotation[0], n.Rotation[1], n.Rotation[2], n.Rotation[3]
	}

	m := identityMat4
	// Rotation columns scaled per axis.
	m[0] = (1 - 2*(qy*qy+qz*qz)) * sx
	m[1] = 2 * (qx*qy + qz*qw) * sx
	m[2] = 2 * (qx*qz - qy*qw) * sx
	m[4] = 2 * (qx*qy - qz*qw) * sy
	m[5] = (1 - 2*(qx*qx+qz*qz)) * sy
	m[6] = 2 * (qy*qz + qx*qw) * sy
	m[8] = 2 * (qx*qz + qy*qw) * sz
	m[9] = 2 * (qy*qz - qx*qw) * sz
	m[10] = (1 - 2*(qx*qx+qy*qy)) * sz
	if len(n.Translation) == 3 {
		m[12], m[13], m[14] = n.Translation[0], n.Translation[1], n.Translation[2]
	}
	return m
}
