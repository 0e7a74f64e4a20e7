package main

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"
	wgpuext_glfw "github.com/rajveermalviya/go-webgpu/wgpuext/glfw"

	"cubefield/scene"
	"cubefield/texture"

	_ "embed"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

var clearColor = wgpu.Color{R: 0.06, G: 0.08, B: 0.12, A: 1.0}

var VertexBufferLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(scene.Vertex{})),
	StepMode:    wgpu.VertexStepMode_Vertex,
	Attributes: []wgpu.VertexAttribute{
		{
			Format:         wgpu.VertexFormat_Float32x3,
			Offset:         0,
			ShaderLocation: 0,
		},
		{
			Format:         wgpu.VertexFormat_Float32x2,
			Offset:         3 * 4,
			ShaderLocation: 1,
		},
		{
			Format:         wgpu.VertexFormat_Float32x3,
			Offset:         5 * 4,
			ShaderLocation: 2,
		},
	},
}

//go:embed shader.wgsl
var shader string

// State owns the window surface, the device and every GPU resource the cube
// field is drawn with.
type State struct {
	surface      *wgpu.Surface
	swapChain    *wgpu.SwapChain
	depth        *wgpu.RenderPassDepthStencilAttachment
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
	device       *wgpu.Device
	queue        *wgpu.Queue
	config       *wgpu.SwapChainDescriptor
	pipeline     *wgpu.RenderPipeline

	textures     [texture.Count]*wgpu.Texture
	textureViews [texture.Count]*wgpu.TextureView
	sampler      *wgpu.Sampler

	// cubes[i] holds the GPU resources of the cube at storage index i.
	cubes []*cubeRenderer
}

func createDepthAttachment(device *wgpu.Device, config *wgpu.SwapChainDescriptor) (*wgpu.Texture, error) {
	return device.CreateTexture(&wgpu.TextureDescriptor{
		Size: wgpu.Extent3D{
			Width:              config.Width,
			Height:             config.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension_2D,
		Format:        wgpu.TextureFormat_Depth32Float,
		Usage:         wgpu.TextureUsage_RenderAttachment,
	})
}

func (s *State) createRenderPassDepthAttachmentView() (*wgpu.RenderPassDepthStencilAttachment, error) {
	if s.depthView != nil {
		s.depthView.Release()
		s.depthView = nil
	}
	if s.depthTexture != nil {
		s.depthTexture.Release()
		s.depthTexture = nil
	}
	depth, err := createDepthAttachment(s.device, s.config)
	if err != nil {
		return nil, err
	}
	s.depthTexture = depth
	depthView, err := depth.CreateView(nil)
	if err != nil {
		return nil, err
	}
	s.depthView = depthView
	return &wgpu.RenderPassDepthStencilAttachment{
		View:              depthView,
		DepthLoadOp:       wgpu.LoadOp_Clear,
		DepthStoreOp:      wgpu.StoreOp_Store,
		DepthClearValue:   1.0,
		StencilLoadOp:     wgpu.LoadOp_Clear,
		StencilStoreOp:    wgpu.StoreOp_Store,
		StencilClearValue: wgpu.LimitU32Undefined,
		StencilReadOnly:   false,
	}, nil
}

// createTextures uploads every procedural pattern as an RGBA8 texture and
// creates the repeating linear sampler they are read through.
func (s *State) createTextures() error {
	extent := wgpu.Extent3D{
		Width:              texture.Size,
		Height:             texture.Size,
		DepthOrArrayLayers: 1,
	}
	for i, texels := range texture.All() {
		tex, err := s.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         fmt.Sprintf("Pattern %d", i),
			Size:          extent,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     wgpu.TextureDimension_2D,
			Format:        wgpu.TextureFormat_RGBA8Unorm,
			Usage:         wgpu.TextureUsage_TextureBinding | wgpu.TextureUsage_CopyDst,
		})
		if err != nil {
			return err
		}
		s.textures[i] = tex

		s.textureViews[i], err = tex.CreateView(nil)
		if err != nil {
			return err
		}

		s.queue.WriteTexture(
			tex.AsImageCopy(),
			texels,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  texture.BytesPerRow,
				RowsPerImage: wgpu.CopyStrideUndefined,
			},
			&extent,
		)
	}

	var err error
	s.sampler, err = s.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Pattern Sampler",
		AddressModeU:  wgpu.AddressMode_Repeat,
		AddressModeV:  wgpu.AddressMode_Repeat,
		AddressModeW:  wgpu.AddressMode_Repeat,
		MagFilter:     wgpu.FilterMode_Linear,
		MinFilter:     wgpu.FilterMode_Linear,
		MipmapFilter:  wgpu.MipmapFilterMode_Nearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	return err
}

func InitState(window *glfw.Window) (s *State, err error) {
	defer func() {
		if err != nil {
			s.Destroy()
			s = nil
		}
	}()
	s = &State{}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	s.surface = instance.CreateSurface(wgpuext_glfw.GetSurfaceDescriptor(window))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    s.surface,
		PowerPreference:      wgpu.PowerPreference_HighPerformance,
	})
	if err != nil {
		return s, err
	}
	defer adapter.Release()

	s.device, err = adapter.RequestDevice(nil)
	if err != nil {
		return s, err
	}
	s.queue = s.device.GetQueue()

	caps := s.surface.GetCapabilities(adapter)

	// The swap chain covers framebuffer pixels, which exceed window
	// coordinates on HiDPI displays.
	width, height := window.GetFramebufferSize()
	s.config = &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentMode_Fifo,
		AlphaMode:   caps.AlphaModes[0],
	}

	s.swapChain, err = s.device.CreateSwapChain(s.surface, s.config)
	if err != nil {
		return s, err
	}
	s.depth, err = s.createRenderPassDepthAttachmentView()
	if err != nil {
		return s, err
	}

	if err = s.createTextures(); err != nil {
		return s, err
	}

	shader, err := s.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "shader.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shader},
	})
	if err != nil {
		return s, err
	}
	defer shader.Release()

	s.pipeline, err = s.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{VertexBufferLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    s.config.Format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMask_All,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopology_TriangleList,
			FrontFace: wgpu.FrontFace_CCW,
			CullMode:  wgpu.CullMode_Back,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormat_Depth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunction_Less,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunction_Always,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunction_Always,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return s, err
	}

	return s, nil
}

func (s *State) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	s.config.Width = uint32(width)
	s.config.Height = uint32(height)

	if s.swapChain != nil {
		s.swapChain.Release()
	}
	var err error
	s.swapChain, err = s.device.CreateSwapChain(s.surface, s.config)
	if err != nil {
		return err
	}
	s.depth, err = s.createRenderPassDepthAttachmentView()
	return err
}

// Render draws one frame. Cubes seen for the first time get their GPU
// resources created here.
func (s *State) Render(items []scene.DrawItem) error {
	for _, it := range items {
		if _, err := s.rendererFor(it.Index, it.Cube); err != nil {
			return fmt.Errorf("cube %d resources: %w", it.Index, err)
		}
	}

	nextTexture, err := s.swapChain.GetCurrentTextureView()
	if err != nil {
		return err
	}
	defer nextTexture.Release()

	encoder, err := s.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       nextTexture,
				LoadOp:     wgpu.LoadOp_Clear,
				StoreOp:    wgpu.StoreOp_Store,
				ClearValue: clearColor,
			},
		},
		DepthStencilAttachment: s.depth,
	})
	defer renderPass.Release()

	renderPass.SetPipeline(s.pipeline)
	for _, it := range items {
		s.cubes[it.Index].Draw(s, renderPass, it.MVP)
	}
	renderPass.End()

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	s.queue.Submit(cmdBuffer)
	s.swapChain.Present()

	return nil
}

func (s *State) Destroy() {
	for _, r := range s.cubes {
		if r != nil {
			r.Release()
		}
	}
	s.cubes = nil
	if s.pipeline != nil {
		s.pipeline.Release()
		s.pipeline = nil
	}
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
	for i := range s.textureViews {
		if s.textureViews[i] != nil {
			s.textureViews[i].Release()
			s.textureViews[i] = nil
		}
		if s.textures[i] != nil {
			s.textures[i].Release()
			s.textures[i] = nil
		}
	}
	if s.depthView != nil {
		s.depthView.Release()
		s.depthView = nil
	}
	if s.depthTexture != nil {
		s.depthTexture.Release()
		s.depthTexture = nil
	}
	if s.swapChain != nil {
		s.swapChain.Release()
		s.swapChain = nil
	}
	if s.config != nil {
		s.config = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
}
