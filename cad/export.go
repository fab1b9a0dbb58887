package cad

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/unixpickle/model3d/model3d"
)

// MeshOptions control tessellation.
type MeshOptions struct {
	// Resolution is the marching-cubes cell size in mm.
	Resolution float64
	// SearchIters refines each surface vertex by bisection.
	SearchIters int
}

// DefaultMeshOptions are fine enough for FDM printing.
func DefaultMeshOptions() MeshOptions {
	return MeshOptions{Resolution: 0.25, SearchIters: 8}
}

// ExportResult describes a written STL file.
type ExportResult struct {
	Path      string
	Triangles int
	Min, Max  model3d.Coord3D
	Volume    float64
	SHA256    string
}

// Mesh tessellates s. An empty result is a geometry error.
func Mesh(s model3d.Solid, opts MeshOptions) (*model3d.Mesh, error) {
	if opts.Resolution <= 0 {
		return nil, fmt.Errorf("mesh resolution must be positive, got %g", opts.Resolution)
	}
	if opts.SearchIters < 0 {
		return nil, fmt.Errorf("search iterations must not be negative, got %d", opts.SearchIters)
	}
	mesh := model3d.MarchingCubesSearch(s, opts.Resolution, opts.SearchIters)
	if mesh.NumTriangles() == 0 {
		return nil, geomErr("solid produced an empty mesh")
	}
	return mesh, nil
}

// WriteSTL writes m as binary STL. Triangles are written in a canonical
// order so the same mesh always produces the same bytes. The file is
// written next to path and renamed into place, so a failed write leaves
// nothing behind.
func WriteSTL(path string, m *model3d.Mesh) (*ExportResult, error) {
	tris := sortedTriangles(m)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".partgen-*.stl")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	hash := sha256.New()
	buf := bufio.NewWriter(io.MultiWriter(tmp, hash))
	if err := model3d.WriteSTL(buf, tris); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("moving %s into place: %w", path, err)
	}

	return &ExportResult{
		Path:      path,
		Triangles: len(tris),
		Min:       m.Min(),
		Max:       m.Max(),
		Volume:    m.Volume(),
		SHA256:    hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// Export tessellates s and writes it to path.
func Export(path string, s model3d.Solid, opts MeshOptions) (*ExportResult, error) {
	mesh, err := Mesh(s, opts)
	if err != nil {
		return nil, err
	}
	return WriteSTL(path, mesh)
}

// LoadSTL reads an STL file back into a mesh.
func LoadSTL(path string) (*model3d.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tris, err := model3d.ReadSTL(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return model3d.NewMeshTriangles(tris), nil
}

func sortedTriangles(m *model3d.Mesh) []*model3d.Triangle {
	tris := m.TriangleSlice()
	sort.Slice(tris, func(i, j int) bool {
		return triangleLess(tris[i], tris[j])
	})
	return tris
}

func triangleLess(a, b *model3d.Triangle) bool {
	for k := 0; k < 3; k++ {
		pa, pb := a[k].Array(), b[k].Array()
		for n := 0; n < 3; n++ {
			if pa[n] != pb[n] {
				return pa[n] < pb[n]
			}
		}
	}
	return false
}
