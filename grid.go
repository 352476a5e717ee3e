package main

// GridSpec describes the flat lattice the point field is built from.
type GridSpec struct {
	ExtentMajor  int     `yaml:"extent_major"`
	ExtentMinor  int     `yaml:"extent_minor"`
	Spacing      float64 `yaml:"spacing"`
	OriginOffset float64 `yaml:"origin_offset"`
	// AspectRatio, when positive, divides the origin offset on the minor axis.
	AspectRatio float64 `yaml:"aspect_ratio"`
}

func (s GridSpec) Validate() error {
	switch {
	case s.ExtentMajor <= 0:
		return &ConfigError{Field: "grid.extent_major", Value: s.ExtentMajor, Reason: "must be positive"}
	case s.ExtentMinor <= 0:
		return &ConfigError{Field: "grid.extent_minor", Value: s.ExtentMinor, Reason: "must be positive"}
	case !(s.Spacing > 0):
		return &ConfigError{Field: "grid.spacing", Value: s.Spacing, Reason: "must be positive"}
	case s.AspectRatio < 0:
		return &ConfigError{Field: "grid.aspect_ratio", Value: s.AspectRatio, Reason: "must not be negative"}
	}
	return nil
}

// Len is the number of vertices BuildGrid produces.
func (s GridSpec) Len() int {
	return s.ExtentMajor * s.ExtentMinor
}

func (s GridSpec) minorOffset() float64 {
	if s.AspectRatio > 0 {
		return s.OriginOffset / s.AspectRatio
	}
	return s.OriginOffset
}

// CenteredGrid returns a spec whose lattice is centered on the origin. The
// minor axis is only centered when both extents exceed one.
func CenteredGrid(major, minor int, spacing float64) GridSpec {
	spec := GridSpec{
		ExtentMajor:  major,
		ExtentMinor:  minor,
		Spacing:      spacing,
		OriginOffset: -float64(major-1) * spacing / 2,
	}
	if minor > 1 && major > 1 {
		spec.AspectRatio = float64(major-1) / float64(minor-1)
	}
	return spec
}

// Vertex is one point of the field. Its lattice position is fixed at build
// time; Z is rewritten every tick.
type Vertex struct {
	a, b float64
	Z    float64
}

func (v Vertex) A() float64 { return v.a }
func (v Vertex) B() float64 { return v.b }

// BuildGrid lays out the lattice in row-major order: the major index varies
// fastest. Z starts at zero.
func BuildGrid(spec GridSpec) ([]Vertex, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	vertices := make([]Vertex, 0, spec.Len())
	minorOrigin := spec.minorOffset()
	for j := 0; j < spec.ExtentMinor; j++ {
		b := minorOrigin + float64(j)*spec.Spacing
		for i := 0; i < spec.ExtentMajor; i++ {
			vertices = append(vertices, Vertex{
				a: spec.OriginOffset + float64(i)*spec.Spacing,
				b: b,
			})
		}
	}
	return vertices, nil
}
