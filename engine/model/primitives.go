package model

// cubeVertices is a unit cube centred on the origin, six faces of two triangles each,
// listed as x, y, z, u, v. Every face maps the full [0, 1] UV square.
var cubeVertices = [36][5]float32{
	{-0.5, -0.5, -0.5, 0, 0},
	{0.5, -0.5, -0.5, 1, 0},
	{0.5, 0.5, -0.5, 1, 1},
	{0.5, 0.5, -0.5, 1, 1},
	{-0.5, 0.5, -0.5, 0, 1},
	{-0.5, -0.5, -0.5, 0, 0},

	{-0.5, -0.5, 0.5, 0, 0},
	{0.5, -0.5, 0.5, 1, 0},
	{0.5, 0.5, 0.5, 1, 1},
	{0.5, 0.5, 0.5, 1, 1},
	{-0.5, 0.5, 0.5, 0, 1},
	{-0.5, -0.5, 0.5, 0, 0},

	{-0.5, 0.5, 0.5, 1, 0},
	{-0.5, 0.5, -0.5, 1, 1},
	{-0.5, -0.5, -0.5, 0, 1},
	{-0.5, -0.5, -0.5, 0, 1},
	{-0.5, -0.5, 0.5, 0, 0},
	{-0.5, 0.5, 0.5, 1, 0},

	{0.5, 0.5, 0.5, 1, 0},
	{0.5, 0.5, -0.5, 1, 1},
	{0.5, -0.5, -0.5, 0, 1},
	{0.5, -0.5, -0.5, 0, 1},
	{0.5, -0.5, 0.5, 0, 0},
	{0.5, 0.5, 0.5, 1, 0},

	{-0.5, -0.5, -0.5, 0, 1},
	{0.5, -0.5, -0.5, 1, 1},
	{0.5, -0.5, 0.5, 1, 0},
	{0.5, -0.5, 0.5, 1, 0},
	{-0.5, -0.5, 0.5, 0, 0},
	{-0.5, -0.5, -0.5, 0, 1},

	{-0.5, 0.5, -0.5, 0, 1},
	{0.5, 0.5, -0.5, 1, 1},
	{0.5, 0.5, 0.5, 1, 0},
	{0.5, 0.5, 0.5, 1, 0},
	{-0.5, 0.5, 0.5, 0, 0},
	{-0.5, 0.5, -0.5, 0, 1},
}

// Cube returns the unit cube as 36 unshared vertices with sequential indices.
//
// Returns:
//   - *Mesh: the cube mesh
func Cube() *Mesh {
	m := &Mesh{
		Name:     "cube",
		Vertices: make([]GPUVertex, len(cubeVertices)),
		Indices:  make([]uint32, len(cubeVertices)),
	}
	for i, v := range cubeVertices {
		m.Vertices[i] = GPUVertex{Position: [3]float32{v[0], v[1], v[2]}, TexCoord: [2]float32{v[3], v[4]}}
		m.Indices[i] = uint32(i)
	}
	return m
}

// Plane returns a unit quad in the XZ plane centred on the origin.
// UVs run from 0 to uvRepeat so a repeat-addressed texture tiles uvRepeat times per side.
//
// Parameters:
//   - uvRepeat: the texture coordinate at the far corners
//
// Returns:
//   - *Mesh: the plane mesh
func Plane(uvRepeat float32) *Mesh {
	return &Mesh{
		Name: "plane",
		Vertices: []GPUVertex{
			{Position: [3]float32{0.5, 0, 0.5}, TexCoord: [2]float32{uvRepeat, uvRepeat}},
			{Position: [3]float32{0.5, 0, -0.5}, TexCoord: [2]float32{uvRepeat, 0}},
			{Position: [3]float32{-0.5, 0, -0.5}, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{-0.5, 0, 0.5}, TexCoord: [2]float32{0, uvRepeat}},
		},
		Indices: []uint32{0, 1, 3, 1, 2, 3},
	}
}
