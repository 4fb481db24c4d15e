package glb

// glTF 2.0 JSON metadata, restricted to the fields this writer emits.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html

type document struct {
	Asset       asset        `json:"asset"`
	Scene       int          `json:"scene"`
	Scenes      []scene      `json:"scenes"`
	Nodes       []node       `json:"nodes"`
	Meshes      []meshDef    `json:"meshes"`
	Materials   []material   `json:"materials"`
	Textures    []texture    `json:"textures"`
	Images      []imageDef   `json:"images"`
	Accessors   []accessor   `json:"accessors"`
	BufferViews []bufferView `json:"bufferViews"`
	Buffers     []buffer     `json:"buffers"`
}

type asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type scene struct {
	Nodes []int `json:"nodes"`
}

type node struct {
	Mesh int `json:"mesh"`
}

type meshDef struct {
	Primitives []primitive `json:"primitives"`
}

type primitive struct {
	// Attributes maps semantic names (POSITION, TEXCOORD_0) to accessor
	// indices. encoding/json sorts map keys, keeping output deterministic.
	Attributes map[string]int `json:"attributes"`
	Material   int            `json:"material"`
	Mode       int            `json:"mode"`
}

type material struct {
	PBRMetallicRoughness pbrMetallicRoughness `json:"pbrMetallicRoughness"`
	// DoubleSided defaults to false and metallic/roughness factors to 1;
	// both are left at their documented defaults.
}

type pbrMetallicRoughness struct {
	BaseColorTexture textureInfo `json:"baseColorTexture"`
}

type textureInfo struct {
	Index int `json:"index"`
}

type texture struct {
	Source int `json:"source"`
}

type imageDef struct {
	BufferView int    `json:"bufferView"`
	MimeType   string `json:"mimeType"`
}

type accessor struct {
	BufferView    int       `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

type bufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride,omitempty"`
	Target     int `json:"target,omitempty"`
}

type buffer struct {
	ByteLength int `json:"byteLength"`
}

// glTF enum values used by the writer.
const (
	componentFloat    = 5126
	targetArrayBuffer = 34962
	modeTriangles     = 4
)
