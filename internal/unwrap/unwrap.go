// Package unwrap generates secondary (lightmap) UVs for merged meshes.
//
// Every connected set of triangles becomes one chart. A chart is projected
// onto the plane of its area weighted normal, and the charts are shelf packed
// into the unit square. The result has no overlapping charts but makes no
// attempt at minimising stretch.
package unwrap

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/philipparndt/meshcombine/internal/geometry"
	"github.com/philipparndt/meshcombine/internal/scene"
)

var (
	ErrEmptyMesh      = errors.New("mesh has no triangles")
	ErrDegenerateMesh = errors.New("mesh has no triangle with a non-zero area")
)

// DefaultMargin is the gap between charts before scaling to the unit square.
const DefaultMargin = 0.02

// Unwrapper fills scene.Mesh.UV1.
type Unwrapper struct {
	margin float64
	log    *zap.Logger
}

// Option configures an Unwrapper.
type Option func(*Unwrapper)

// WithMargin sets the relative gap between packed charts.
func WithMargin(margin float64) Option {
	return func(u *Unwrapper) {
		if margin >= 0 {
			u.margin = margin
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(u *Unwrapper) {
		if log != nil {
			u.log = log
		}
	}
}

func New(opts ...Option) *Unwrapper {
	u := &Unwrapper{margin: DefaultMargin, log: zap.NewNop()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type chart struct {
	vertices []int
	normal   mgl32.Vec3
	area     float32
	// projected coordinates, parallel to vertices
	coords        [][2]float64
	minU, minV    float64
	width, height float64
}

// GenerateSecondaryUVs replaces mesh.UV1. The mesh is left untouched on error.
func (u *Unwrapper) GenerateSecondaryUVs(mesh *scene.Mesh) error {
	indices := mesh.Indices()
	triCount := len(indices) / 3
	if mesh.VertexCount() == 0 || triCount == 0 {
		return errors.Wrapf(ErrEmptyMesh, "mesh %q", mesh.Name)
	}
	for _, idx := range indices[:triCount*3] {
		if int(idx) >= mesh.VertexCount() {
			return errors.Errorf("mesh %q: index %d out of range for %d vertices", mesh.Name, idx, mesh.VertexCount())
		}
	}

	charts := buildCharts(mesh.Positions, indices[:triCount*3])

	var total float32
	for _, c := range charts {
		total += c.area
	}
	if total == 0 {
		return errors.Wrapf(ErrDegenerateMesh, "mesh %q", mesh.Name)
	}

	rects := make([]geometry.Rectangle, len(charts))
	for i, c := range charts {
		c.project(mesh.Positions)
		rects[i] = geometry.Rectangle{Width: c.width, Height: c.height, ID: i}
	}

	// margin is relative to the average chart size
	spacing := u.margin * math.Sqrt(float64(total)/float64(len(charts)))
	packer := geometry.NewPacker(spacing)
	placed := packer.Pack(rects, packer.SquareRowWidth(rects))
	w, h := geometry.Extent(placed)
	scale := math.Max(w, h)
	if scale == 0 {
		return errors.Wrapf(ErrDegenerateMesh, "mesh %q", mesh.Name)
	}

	uv := make([][2]float32, mesh.VertexCount())
	for _, p := range placed {
		c := charts[p.ID]
		for i, v := range c.vertices {
			uv[v] = [2]float32{
				float32((p.X + c.coords[i][0] - c.minU) / scale),
				float32((p.Y + c.coords[i][1] - c.minV) / scale),
			}
		}
	}
	mesh.UV1 = uv

	u.log.Debug("generated secondary UVs",
		zap.String("mesh", mesh.Name),
		zap.Int("charts", len(charts)),
		zap.Float64("extent", scale))
	return nil
}

// buildCharts groups triangles into connected components.
func buildCharts(positions [][3]float32, indices []uint32) []*chart {
	sets := newDisjointSet(len(positions))
	for i := 0; i < len(indices); i += 3 {
		sets.union(int(indices[i]), int(indices[i+1]))
		sets.union(int(indices[i]), int(indices[i+2]))
	}

	byRoot := map[int]*chart{}
	var charts []*chart
	lookup := func(v int) *chart {
		r := sets.find(v)
		c, ok := byRoot[r]
		if !ok {
			c = &chart{}
			byRoot[r] = c
			charts = append(charts, c)
		}
		return c
	}

	for i := 0; i < len(indices); i += 3 {
		a := mgl32.Vec3(positions[indices[i]])
		b := mgl32.Vec3(positions[indices[i+1]])
		d := mgl32.Vec3(positions[indices[i+2]])
		// cross product length is twice the area and points along the normal
		n := b.Sub(a).Cross(d.Sub(a))
		c := lookup(int(indices[i]))
		c.normal = c.normal.Add(n)
		c.area += n.Len() / 2
	}

	seen := make([]bool, len(positions))
	for _, idx := range indices {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		c := lookup(int(idx))
		c.vertices = append(c.vertices, int(idx))
	}
	return charts
}

// project flattens the chart onto the plane of its normal.
func (c *chart) project(positions [][3]float32) {
	uAxis, vAxis := planeBasis(c.normal)

	c.coords = make([][2]float64, len(c.vertices))
	c.minU, c.minV = math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for i, v := range c.vertices {
		p := mgl32.Vec3(positions[v])
		pu, pv := float64(p.Dot(uAxis)), float64(p.Dot(vAxis))
		c.coords[i] = [2]float64{pu, pv}
		c.minU, maxU = math.Min(c.minU, pu), math.Max(maxU, pu)
		c.minV, maxV = math.Min(c.minV, pv), math.Max(maxV, pv)
	}
	c.width = maxU - c.minU
	c.height = maxV - c.minV
}

// planeBasis returns two orthonormal axes perpendicular to n. A zero normal
// projects onto the XY plane.
func planeBasis(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	if n.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	n = n.Normalize()

	ref := mgl32.Vec3{0, 1, 0}
	if abs(n.Y()) > 0.9 {
		ref = mgl32.Vec3{0, 0, 1}
	}
	u := ref.Cross(n).Normalize()
	v := n.Cross(u)
	return u, v
}

func abs(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
