// Package glb packs an extruded sprite mesh and its repaired texture
// into a single binary glTF (GLB) container: a 12-byte header, a
// space-padded JSON chunk describing the scene graph, and a zero-padded
// binary chunk holding the raw vertex buffer followed by the encoded
// image.
package glb

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrTooLarge is returned when the assembled container would exceed the
// uint32 length field of the GLB header. The asset cannot be expressed
// in this format; it is never truncated.
var ErrTooLarge = errors.New("glb: asset exceeds uint32 size limit")

// Container framing constants.
const (
	headerMagic   = 0x46546C67 // "glTF"
	headerLen     = 12
	chunkHdrLen   = 8
	chunkJSON     = 0x4E4F534A // "JSON"
	chunkBIN      = 0x004E4942 // "BIN\0"
	formatVersion = 2
)

// VertexStride is the packed size of one vertex: 3 position floats
// followed by 2 UV floats.
const VertexStride = 20

// Byte offsets of the vertex fields within the packed struct.
const (
	positionOffset = 0
	uvOffset       = 12
)

// Vertex is the packed wire layout of one output vertex.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
}

// Encode lays out vertices and a PNG-encoded image into a GLB byte
// buffer. An empty vertex slice is valid and produces a well-formed,
// if pointless, asset.
func Encode(vertices []Vertex, imagePNG []byte) ([]byte, error) {
	vertexBytes := packVertices(vertices)
	vertexBytes = pad(vertexBytes, 0)

	imageOffset := len(vertexBytes)
	bin := append(vertexBytes, imagePNG...)
	bin = pad(bin, 0)

	min, max := boundsOf(vertices)
	doc := buildDocument(len(vertices), imageOffset, len(imagePNG), len(bin), min, max)
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("glb: marshal metadata: %w", err)
	}
	// The JSON chunk is padded with trailing spaces so readers that
	// parse the whole chunk still see valid JSON.
	jsonBytes = pad(jsonBytes, ' ')

	total, err := totalLength(len(jsonBytes), len(bin))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, total)
	out = binary.LittleEndian.AppendUint32(out, headerMagic)
	out = binary.LittleEndian.AppendUint32(out, formatVersion)
	out = binary.LittleEndian.AppendUint32(out, total)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(jsonBytes)))
	out = binary.LittleEndian.AppendUint32(out, chunkJSON)
	out = append(out, jsonBytes...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(bin)))
	out = binary.LittleEndian.AppendUint32(out, chunkBIN)
	out = append(out, bin...)
	return out, nil
}

func packVertices(vertices []Vertex) []byte {
	buf := make([]byte, 0, len(vertices)*VertexStride)
	for _, v := range vertices {
		for _, f := range v.Position {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
		for _, f := range v.UV {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

func buildDocument(vertexCount, imageOffset, imageLen, binLen int, min, max [3]float32) document {
	return document{
		Asset:  asset{Version: "2.0", Generator: "sprite-extruder"},
		Scene:  0,
		Scenes: []scene{{Nodes: []int{0}}},
		Nodes:  []node{{Mesh: 0}},
		Meshes: []meshDef{{
			Primitives: []primitive{{
				Attributes: map[string]int{
					"POSITION":   0,
					"TEXCOORD_0": 1,
				},
				Material: 0,
				Mode:     modeTriangles,
			}},
		}},
		Materials: []material{{
			PBRMetallicRoughness: pbrMetallicRoughness{
				BaseColorTexture: textureInfo{Index: 0},
			},
		}},
		Textures: []texture{{Source: 0}},
		Images:   []imageDef{{BufferView: 1, MimeType: "image/png"}},
		Accessors: []accessor{
			{
				BufferView:    0,
				ByteOffset:    positionOffset,
				ComponentType: componentFloat,
				Count:         vertexCount,
				Type:          "VEC3",
				Min:           min[:],
				Max:           max[:],
			},
			{
				BufferView:    0,
				ByteOffset:    uvOffset,
				ComponentType: componentFloat,
				Count:         vertexCount,
				Type:          "VEC2",
			},
		},
		BufferViews: []bufferView{
			{
				Buffer:     0,
				ByteOffset: 0,
				ByteLength: vertexCount * VertexStride,
				ByteStride: VertexStride,
				Target:     targetArrayBuffer,
			},
			{
				Buffer:     0,
				ByteOffset: imageOffset,
				ByteLength: imageLen,
			},
		},
		Buffers: []buffer{{ByteLength: binLen}},
	}
}

// boundsOf computes the exact min/max bounding box of the vertex
// positions, as required by the position accessor. Empty input yields a
// zero box.
func boundsOf(vertices []Vertex) (min, max [3]float32) {
	if len(vertices) == 0 {
		return
	}
	min = vertices[0].Position
	max = vertices[0].Position
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return
}

// totalLength computes the declared container length from the padded
// chunk body sizes, failing with ErrTooLarge when it does not fit the
// header's uint32 field.
func totalLength(jsonLen, binLen int) (uint32, error) {
	total := int64(headerLen) + int64(chunkHdrLen) + int64(jsonLen) +
		int64(chunkHdrLen) + int64(binLen)
	if total > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, total)
	}
	return uint32(total), nil
}

// pad extends b with fill bytes to the next multiple of four.
func pad(b []byte, fill byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, fill)
	}
	return b
}
