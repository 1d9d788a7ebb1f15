// Package ssbh reads and writes the SSBH family of binary file formats
// used by a commercial video game to store skeletons, meshes, materials,
// animations, render-pipeline descriptors, shader blobs, and helper-bone
// constraints, plus the two non-SSBH sibling formats MeshEx and Adj.
//
// # Core guarantees
//
//   - Round-trip fidelity: parsing a valid file and writing it back
//     produces a byte-identical file.
//   - Type-safe representation: every in-memory value is the image of
//     some valid byte sequence, and every valid byte sequence has a
//     unique in-memory image.
//
// # Basic usage
//
// Reading a file and inspecting its contents:
//
//	data, _ := os.ReadFile("fighter.nuhlpb")
//	root, diag, err := ssbh.ReadSsbh(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if diag.HasWarnings() {
//	    log.Printf("warnings: %v", diag.Warnings)
//	}
//	hlpb := root.Record.(*schema.Hlpb)
//
// Writing it back out:
//
//	out, err := ssbh.WriteSsbh(root)
//
// # Package structure
//
// This package provides convenient top-level wrappers around the schema
// package, which holds the per-format record definitions, and the data
// package, which holds the higher-level vertex-buffer and animation-track
// codecs (format-version-aware decoding into normalized in-memory forms).
// For advanced usage — working with a specific format's fields directly,
// or normalizing a Mesh/Anim record — use the schema and data packages.
package ssbh

import (
	"github.com/smashforge/ssbh/layout"
	"github.com/smashforge/ssbh/schema"
)

// Ssbh is the top-level parsed container: a record kind, a version, and
// the decoded record as an `any` the caller type-asserts to its concrete
// schema type.
type Ssbh = schema.Ssbh

// Diagnostics carries non-fatal warnings produced alongside a successful
// read, currently just TrailingGarbage.
type Diagnostics = schema.Diagnostics

// MeshEx is the non-SSBH mesh-extended-data sidecar format.
type MeshEx = schema.MeshEx

// Adj is the non-SSBH vertex-adjacency sidecar format.
type Adj = schema.Adj

// ReadSsbh parses a complete SSBH file: the four-byte HBSS magic, a
// (major, minor) version, and the version-dispatched record that follows.
func ReadSsbh(data []byte) (*Ssbh, Diagnostics, error) {
	return schema.ReadSsbh(data)
}

// WriteSsbh serializes root back to its on-disk bytes.
func WriteSsbh(root *Ssbh) ([]byte, error) {
	return schema.WriteSsbh(root)
}

// ReadSsbhWithOptions is ReadSsbh with caller-controlled strictness; see
// layout.ReaderOptions.
func ReadSsbhWithOptions(data []byte, opts layout.ReaderOptions) (*Ssbh, Diagnostics, error) {
	return schema.ReadSsbhWithOptions(data, opts)
}

// ReadMeshEx parses a MeshEx sidecar file.
func ReadMeshEx(data []byte) (*MeshEx, error) {
	return schema.ReadMeshEx(data)
}

// WriteMeshEx serializes a MeshEx sidecar back to its on-disk bytes.
func WriteMeshEx(m *MeshEx) ([]byte, error) {
	return schema.WriteMeshEx(m)
}

// ReadAdj parses an Adj sidecar file.
func ReadAdj(data []byte) (*Adj, error) {
	return schema.ReadAdj(data)
}

// WriteAdj serializes an Adj sidecar back to its on-disk bytes.
func WriteAdj(a *Adj) ([]byte, error) {
	return schema.WriteAdj(a)
}
