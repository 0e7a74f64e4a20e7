package scene

const (
	FloatsPerVertex  = 8 // x,y,z,u,v,r,g,b
	VerticesPerCube  = 36
	FloatsPerCube    = VerticesPerCube * FloatsPerVertex
	baseVertexStride = 5
)

// Vertex matches the interleaved layout uploaded to the GPU.
type Vertex struct {
	Pos      [3]float32
	TexCoord [2]float32
	Color    [3]float32
}

// Unit cube, two triangles per face, counter-clockwise from outside.
// Each row is x, y, z, u, v.
var baseVertices = [VerticesPerCube * baseVertexStride]float32{
	// front (+z)
	-1, -1, 1, 0, 1,
	1, -1, 1, 1, 1,
	1, 1, 1, 1, 0,
	-1, -1, 1, 0, 1,
	1, 1, 1, 1, 0,
	-1, 1, 1, 0, 0,
	// back (-z)
	1, -1, -1, 0, 1,
	-1, -1, -1, 1, 1,
	-1, 1, -1, 1, 0,
	1, -1, -1, 0, 1,
	-1, 1, -1, 1, 0,
	1, 1, -1, 0, 0,
	// left (-x)
	-1, -1, -1, 0, 1,
	-1, -1, 1, 1, 1,
	-1, 1, 1, 1, 0,
	-1, -1, -1, 0, 1,
	-1, 1, 1, 1, 0,
	-1, 1, -1, 0, 0,
	// right (+x)
	1, -1, 1, 0, 1,
	1, -1, -1, 1, 1,
	1, 1, -1, 1, 0,
	1, -1, 1, 0, 1,
	1, 1, -1, 1, 0,
	1, 1, 1, 0, 0,
	// top (+y)
	-1, 1, 1, 0, 1,
	1, 1, 1, 1, 1,
	1, 1, -1, 1, 0,
	-1, 1, 1, 0, 1,
	1, 1, -1, 1, 0,
	-1, 1, -1, 0, 0,
	// bottom (-y)
	-1, -1, -1, 0, 1,
	1, -1, -1, 1, 1,
	1, -1, 1, 1, 0,
	-1, -1, -1, 0, 1,
	1, -1, 1, 1, 0,
	-1, -1, 1, 0, 0,
}

// Vertices returns the cube's local-space geometry: corners scaled by the
// half size, tinted with the category colour. Cubes on the untinted texture
// slot are drawn white.
func (c *Cube) Vertices(untintedTexture int) []Vertex {
	color := c.Category.Color
	if c.Texture == untintedTexture {
		color = [3]float32{1, 1, 1}
	}
	hs := c.HalfSize

	out := make([]Vertex, VerticesPerCube)
	for i := range out {
		src := baseVertices[i*baseVertexStride : (i+1)*baseVertexStride]
		out[i] = Vertex{
			Pos:      [3]float32{src[0] * hs, src[1] * hs, src[2] * hs},
			TexCoord: [2]float32{src[3], src[4]},
			Color:    color,
		}
	}
	return out
}
