package main

import (
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: inspectglb <file.glb>")
		os.Exit(1)
	}
	path := os.Args[1]

	doc, err := gltf.Open(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Asset: glTF %s", doc.Asset.Version)
	if doc.Asset.Generator != "" {
		fmt.Printf(" (%s)", doc.Asset.Generator)
	}
	fmt.Println()

	for i, b := range doc.Buffers {
		fmt.Printf("Buffer[%d]: %d bytes\n", i, b.ByteLength)
	}
	for i, v := range doc.BufferViews {
		fmt.Printf("  View[%d]: offset=%d, len=%d, stride=%d\n",
			i, v.ByteOffset, v.ByteLength, v.ByteStride)
	}
	for i, a := range doc.Accessors {
		fmt.Printf("Accessor[%d]: count=%d, offset=%d", i, a.Count, a.ByteOffset)
		if len(a.Min) > 0 {
			fmt.Printf(", min=%v, max=%v", a.Min, a.Max)
		}
		fmt.Println()
	}
	for i, img := range doc.Images {
		fmt.Printf("Image[%d]: mime=%s\n", i, img.MimeType)
	}
	for i, m := range doc.Meshes {
		fmt.Printf("Mesh[%d]: primitives=%d\n", i, len(m.Primitives))
		for j, p := range m.Primitives {
			fmt.Printf("  Primitive[%d]: mode=%d, attributes=%v\n", j, p.Mode, p.Attributes)
		}
	}
	fmt.Printf("Nodes: %d, Scenes: %d\n", len(doc.Nodes), len(doc.Scenes))
}
