package formats

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Faultbox/brickforge/pkg/geom"
)

// triangleBuffer packs one float32 triangle (three VEC3 positions) followed
// by three uint16 indices, matching the accessors in triangleJSON.
func triangleBuffer() []byte {
	var buf []byte
	for _, v := range []float64{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
	}
	for _, i := range []uint16{0, 1, 2} {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	return buf
}

// triangleJSON renders a single-triangle document. bufferField supplies the
// buffers entry; extra appends further top-level fields.
func triangleJSON(bufferField, extra string) []byte {
	return []byte(fmt.Sprintf(`{
		"buffers":[%s],
		"bufferViews":[
			{"buffer":0,"byteOffset":0,"byteLength":36},
			{"buffer":0,"byteOffset":36,"byteLength":6}
		],
		"accessors":[
			{"bufferView":0,"componentType":5126,"count":3,"type":"VEC3"},
			{"bufferView":1,"componentType":5123,"count":3,"type":"SCALAR"}
		],
		"meshes":[{"primitives":[{"attributes":{"POSITION":0},"indices":1}]}]%s}`,
		bufferField, extra))
}

func embeddedBuffer(t *testing.T) string {
	t.Helper()
	buf := triangleBuffer()
	return fmt.Sprintf(`{"byteLength":%d,"uri":"data:application/octet-stream;base64,%s"}`,
		len(buf), base64.StdEncoding.EncodeToString(buf))
}

func TestParseGLTFTriangle(t *testing.T) {
	m, err := ParseGLTF(triangleJSON(embeddedBuffer(t), ""))
	if err != nil {
		t.Fatalf("ParseGLTF failed: %v", err)
	}
	if got := m.TriangleCount(); got != 1 {
		t.Fatalf("TriangleCount() = %d, want 1", got)
	}
	tri := m.Triangle(0)
	if tri.B != (geom.Vec3{X: 1, Y: 0, Z: 0}) || tri.C != (geom.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("triangle = %+v, unexpected vertices", tri)
	}
}

func TestParseGLTFNodeTranslation(t *testing.T) {
	extra := `,"nodes":[{"mesh":0,"translation":[5,0,0]}],"scenes":[{"nodes":[0]}],"scene":0`
	m, err := ParseGLTF(triangleJSON(embeddedBuffer(t), extra))
	if err != nil {
		t.Fatalf("ParseGLTF failed: %v", err)
	}
	if got := m.TriangleCount(); got != 1 {
		t.Fatalf("TriangleCount() = %d, want 1", got)
	}
	if tri := m.Triangle(0); tri.A != (geom.Vec3{X: 5, Y: 0, Z: 0}) {
		t.Errorf("translated vertex = %v, want (5, 0, 0)", tri.A)
	}
}

func TestParseGLTFNodeScaleMatrix(t *testing.T) {
	// An explicit column-major matrix doubling X.
	extra := `,"nodes":[{"mesh":0,"matrix":[2,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]}],"scenes":[{"nodes":[0]}]`
	m, err := ParseGLTF(triangleJSON(embeddedBuffer(t), extra))
	if err != nil {
		t.Fatalf("ParseGLTF failed: %v", err)
	}
	if tri := m.Triangle(0); tri.B != (geom.Vec3{X: 2, Y: 0, Z: 0}) {
		t.Errorf("scaled vertex = %v, want (2, 0, 0)", tri.B)
	}
}

func TestParseGLTFSkipsNonTriangles(t *testing.T) {
	doc := []byte(fmt.Sprintf(`{
		"buffers":[%s],
		"bufferViews":[{"buffer":0,"byteOffset":0,"byteLength":36}],
		"accessors":[{"bufferView":0,"componentType":5126,"count":3,"type":"VEC3"}],
		"meshes":[{"primitives":[{"attributes":{"POSITION":0},"mode":1}]}]}`,
		embeddedBuffer(t)))
	m, err := ParseGLTF(doc)
	if err != nil {
		t.Fatalf("ParseGLTF failed: %v", err)
	}
	if got := m.TriangleCount(); got != 0 {
		t.Errorf("TriangleCount() = %d, want 0 for a line primitive", got)
	}
}

func TestParseGLB(t *testing.T) {
	bin := triangleBuffer()
	doc := triangleJSON(fmt.Sprintf(`{"byteLength":%d}`, len(bin)), "")
	m, err := ParseGLB(glbContainer(doc, bin))
	if err != nil {
		t.Fatalf("ParseGLB failed: %v", err)
	}
	if got := m.TriangleCount(); got != 1 {
		t.Errorf("TriangleCount() = %d, want 1", got)
	}
}

func TestParseGLBMalformed(t *testing.T) {
	if _, err := ParseGLB([]byte("not a glb")); !errors.Is(err, ErrMalformedGLB) {
		t.Errorf("err = %v, want ErrMalformedGLB", err)
	}
	// Valid magic but a chunk length past the end of the file.
	bad := make([]byte, 20)
	binary.LittleEndian.PutUint32(bad, glbMagic)
	binary.LittleEndian.PutUint32(bad[4:], 2)
	binary.LittleEndian.PutUint32(bad[8:], 20)
	binary.LittleEndian.PutUint32(bad[12:], 9999)
	binary.LittleEndian.PutUint32(bad[16:], glbChunkJSON)
	if _, err := ParseGLB(bad); !errors.Is(err, ErrMalformedGLB) {
		t.Errorf("err = %v, want ErrMalformedGLB", err)
	}
}

func TestParseGLTFExternalBufferRejected(t *testing.T) {
	doc := triangleJSON(`{"byteLength":42,"uri":"mesh.bin"}`, "")
	if _, err := ParseGLTF(doc); !errors.Is(err, ErrMalformedGLTF) {
		t.Errorf("err = %v, want ErrMalformedGLTF for unresolvable buffer", err)
	}
}

func TestParseGLTFAccessorOverrun(t *testing.T) {
	// Accessor claims more elements than the buffer holds.
	buf := triangleBuffer()
	doc := []byte(fmt.Sprintf(`{
		"buffers":[%s],
		"bufferViews":[{"buffer":0,"byteOffset":0,"byteLength":%d}],
		"accessors":[{"bufferView":0,"componentType":5126,"count":99,"type":"VEC3"}],
		"meshes":[{"primitives":[{"attributes":{"POSITION":0}}]}]}`,
		embeddedBuffer(t), len(buf)))
	if _, err := ParseGLTF(doc); !errors.Is(err, ErrMalformedGLTF) {
		t.Errorf("err = %v, want ErrMalformedGLTF for overrunning accessor", err)
	}
}

// glbContainer wraps a JSON document and binary payload as a GLB file.
func glbContainer(jsonDoc, bin []byte) []byte {
	pad := func(b []byte, p byte) []byte {
		for len(b)%4 != 0 {
			b = append(b, p)
		}
		return b
	}
	jsonDoc = pad(jsonDoc, ' ')
	bin = pad(bin, 0)

	var out []byte
	out = binary.LittleEndian.AppendUint32(out, glbMagic)
	out = binary.LittleEndian.AppendUint32(out, 2)
	out = binary.LittleEndian.AppendUint32(out, uint32(12+8+len(jsonDoc)+8+len(bin)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(jsonDoc)))
	out = binary.LittleEndian.AppendUint32(out, glbChunkJSON)
	out = append(out, jsonDoc...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(bin)))
	out = binary.LittleEndian.AppendUint32(out, glbChunkBIN)
	out = append(out, bin...)
	return out
}
