package main

import (
	"fmt"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"cubefield/mat"
	"cubefield/scene"
	"cubefield/texture"
)

// cubeRenderer holds the GPU side of one cube. The cube itself never sees
// these handles.
type cubeRenderer struct {
	vertexBuf    *wgpu.Buffer
	vertexBufLen int
	uniformBuf   *wgpu.Buffer
	bindGroup    *wgpu.BindGroup
}

func (r *cubeRenderer) Release() {
	if r.bindGroup != nil {
		r.bindGroup.Release()
	}
	if r.uniformBuf != nil {
		r.uniformBuf.Release()
	}
	if r.vertexBuf != nil {
		r.vertexBuf.Release()
	}
}

func createCubeRenderer(s *State, index int, c *scene.Cube) (*cubeRenderer, error) {
	r := cubeRenderer{}
	name := fmt.Sprintf("Cube %d", index)
	vertexData := c.Vertices(texture.Untinted)

	var err error
	r.vertexBuf, err = s.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + " Vertex Buffer",
		Contents: wgpu.ToBytes(vertexData),
		Usage:    wgpu.BufferUsage_Vertex,
	})
	if err != nil {
		return &r, err
	}
	r.vertexBufLen = len(vertexData)

	mvp := mat.Identity()
	r.uniformBuf, err = s.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + " Uniform Buffer",
		Contents: wgpu.ToBytes(mvp[:]),
		Usage:    wgpu.BufferUsage_Uniform | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		return &r, err
	}

	bindGroupLayout := s.pipeline.GetBindGroupLayout(0)
	defer bindGroupLayout.Release()

	r.bindGroup, err = s.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  name + " Bind Group",
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  r.uniformBuf,
				Size:    wgpu.WholeSize,
			},
			{
				Binding:     1,
				TextureView: s.textureViews[c.Texture],
				Size:        wgpu.WholeSize,
			},
			{
				Binding: 2,
				Sampler: s.sampler,
				Size:    wgpu.WholeSize,
			},
		},
	})
	return &r, err
}

// rendererFor returns the resources for the cube at index, creating them
// the first frame the cube is drawn.
func (s *State) rendererFor(index int, c *scene.Cube) (*cubeRenderer, error) {
	for len(s.cubes) <= index {
		s.cubes = append(s.cubes, nil)
	}
	if r := s.cubes[index]; r != nil {
		return r, nil
	}
	r, err := createCubeRenderer(s, index, c)
	if err != nil {
		r.Release()
		return nil, err
	}
	s.cubes[index] = r
	return r, nil
}

// Draw uploads this frame's MVP and records the cube's draw call.
func (r *cubeRenderer) Draw(s *State, renderPass *wgpu.RenderPassEncoder, mvp mat.Mat4) {
	s.queue.WriteBuffer(r.uniformBuf, 0, wgpu.ToBytes(mvp[:]))
	renderPass.SetBindGroup(0, r.bindGroup, nil)
	renderPass.SetVertexBuffer(0, r.vertexBuf, 0, wgpu.WholeSize)
	renderPass.Draw(uint32(r.vertexBufLen), 1, 0, 0)
}
