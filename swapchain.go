// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// DefaultSwapChainLength is the chain length reported through the
// TextureSwapChainDepth property.
const DefaultSwapChainLength = 3

// TextureType selects the shape of a texture swap chain.
type TextureType int32

const (
	Texture2D TextureType = iota
	TextureCube
)

// TextureFormat is the legacy texture format enumeration.
type TextureFormat int32

const (
	FormatUnknown TextureFormat = iota
	FormatR8G8B8A8Unorm
	FormatR8G8B8A8UnormSrgb
	FormatB8G8R8A8Unorm
	FormatB8G8R8A8UnormSrgb
	FormatR8Unorm
	FormatD24UnormS8Uint
	FormatD32Float
)

// gpuFormat maps a legacy format to the nearest gputypes texture format.
func (f TextureFormat) gpuFormat() gputypes.TextureFormat {
	switch f {
	case FormatR8G8B8A8Unorm, FormatR8G8B8A8UnormSrgb:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatB8G8R8A8Unorm, FormatB8G8R8A8UnormSrgb:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	case FormatD24UnormS8Uint, FormatD32Float:
		return gputypes.TextureFormatDepth24PlusStencil8
	default:
		return gputypes.TextureFormatUndefined
	}
}

// TextureSwapChainDesc describes a texture swap chain to create.
type TextureSwapChainDesc struct {
	Type        TextureType
	Format      TextureFormat
	ArraySize   int32
	Width       int32
	Height      int32
	MipLevels   int32
	SampleCount int32
	StaticImage bool
}

// TextureSwapChain is an image chain used as a render target. At most one
// image is acquired but unreleased at a time.
type TextureSwapChain struct {
	session *Session
	handle  uint64
	drv     driver.Swapchain
	desc    TextureSwapChainDesc
	api     driver.GraphicsAPI
	images  []gpucontext.Texture

	currentIndex int32
	length       int
}

// CreateTextureSwapChain creates an image chain for the given graphics
// API. This is the seam the graphics bindings call after negotiating their
// device; the initial image of a non-static chain is acquired here so the
// client can render into it immediately.
func (s *Session) CreateTextureSwapChain(desc TextureSwapChainDesc, api driver.GraphicsAPI) (*TextureSwapChain, error) {
	if !s.alive() {
		return nil, ErrInvalidSession
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, s.bridge.setLastError(ErrInvalidParameter)
	}

	faceCount := int32(1)
	if desc.Type == TextureCube {
		faceCount = 6
	}
	drvChain, err := s.drv.CreateSwapchain(driver.SwapchainDesc{
		Format:      desc.Format.gpuFormat(),
		Width:       desc.Width,
		Height:      desc.Height,
		MipCount:    max(desc.MipLevels, 1),
		SampleCount: max(desc.SampleCount, 1),
		ArraySize:   max(desc.ArraySize, 1),
		FaceCount:   faceCount,
		Static:      desc.StaticImage,
		API:         api,
	})
	if err != nil {
		return nil, s.bridge.setLastError(&RuntimeError{err})
	}

	chain := &TextureSwapChain{
		session: s,
		handle:  s.nextHandle,
		drv:     drvChain,
		desc:    desc,
		api:     api,
		images:  drvChain.Images(),
		length:  drvChain.Length(),
	}
	s.nextHandle++

	if !desc.StaticImage {
		idx, err := drvChain.Acquire()
		if err != nil {
			drvChain.Destroy()
			return nil, s.bridge.setLastError(&RuntimeError{err})
		}
		chain.currentIndex = idx
	}

	s.chains[chain.handle] = chain
	s.log.Debug("swapchain created",
		"handle", chain.handle,
		"size", [2]int32{desc.Width, desc.Height},
		"static", desc.StaticImage)
	return chain, nil
}

// Handle returns the opaque handle the chain is registered under.
func (c *TextureSwapChain) Handle() uint64 { return c.handle }

// Length returns the number of images in the chain.
func (c *TextureSwapChain) Length() (int, error) {
	if c == nil {
		return 0, ErrInvalidParameter
	}
	return c.length, nil
}

// CurrentIndex returns the index of the acquired image.
func (c *TextureSwapChain) CurrentIndex() (int32, error) {
	if c == nil {
		return 0, ErrInvalidParameter
	}
	return c.currentIndex, nil
}

// Desc returns the chain's creation descriptor.
func (c *TextureSwapChain) Desc() (TextureSwapChainDesc, error) {
	if c == nil {
		return TextureSwapChainDesc{}, ErrInvalidParameter
	}
	return c.desc, nil
}

// Images returns the backend texture for each image in the chain.
func (c *TextureSwapChain) Images() []gpucontext.Texture {
	if c == nil {
		return nil
	}
	return c.images
}

// chainSize returns the chain extent for viewport clamping.
func (c *TextureSwapChain) chainSize() xrmath.Sizei {
	return xrmath.Sizei{W: c.desc.Width, H: c.desc.Height}
}

// isGL reports whether the chain's images belong to an OpenGL binding,
// whose vertical texture origin is inverted relative to the other APIs.
func (c *TextureSwapChain) isGL() bool {
	return c.api == driver.GraphicsOpenGL
}

// CommitTextureSwapChain releases the acquired image to the compositor.
// For non-static chains the next image is acquired immediately and the
// chain is queued for the wait BeginFrame performs. A failed acquire
// leaves the current index unchanged, the chain off the queue and no image
// acquired; a later commit starts with a release and fails there, it does
// not retry the acquire.
func (s *Session) CommitTextureSwapChain(chain *TextureSwapChain) error {
	if !s.alive() {
		return ErrInvalidSession
	}
	if chain == nil {
		return s.bridge.setLastError(ErrInvalidParameter)
	}

	if err := chain.drv.Release(); err != nil {
		return s.bridge.setLastError(&RuntimeError{err})
	}

	if !chain.desc.StaticImage {
		idx, err := chain.drv.Acquire()
		if err != nil {
			return s.bridge.setLastError(&RuntimeError{err})
		}
		chain.currentIndex = idx

		s.chainMu.Lock()
		s.acquired = append(s.acquired, chain)
		s.chainMu.Unlock()
	}

	return nil
}

// DestroyTextureSwapChain removes the chain from the pending-wait queue
// and releases its runtime handle and image metadata.
func (s *Session) DestroyTextureSwapChain(chain *TextureSwapChain) {
	if !s.alive() || chain == nil {
		return
	}

	s.chainMu.Lock()
	for i, c := range s.acquired {
		if c == chain {
			s.acquired = append(s.acquired[:i], s.acquired[i+1:]...)
			break
		}
	}
	s.chainMu.Unlock()

	chain.drv.Destroy()
	chain.images = nil
	delete(s.chains, chain.handle)
	s.log.Debug("swapchain destroyed", "handle", chain.handle)
}

// MirrorTextureDesc describes a mirror texture to create.
type MirrorTextureDesc struct {
	Format TextureFormat
	Width  int32
	Height int32
}

// MirrorTexture is a thin wrapper around a dummy swap chain used only for
// descriptor queries; no desktop mirroring is performed.
type MirrorTexture struct {
	dummy *TextureSwapChain
}

// CreateMirrorTexture creates the dummy chain backing a mirror texture.
func (s *Session) CreateMirrorTexture(desc MirrorTextureDesc, api driver.GraphicsAPI) (*MirrorTexture, error) {
	chain, err := s.CreateTextureSwapChain(TextureSwapChainDesc{
		Type:        Texture2D,
		Format:      desc.Format,
		ArraySize:   1,
		Width:       desc.Width,
		Height:      desc.Height,
		MipLevels:   1,
		SampleCount: 1,
		StaticImage: true,
	}, api)
	if err != nil {
		return nil, err
	}
	return &MirrorTexture{dummy: chain}, nil
}

// Chain returns the dummy chain carrying the mirror texture's descriptor.
func (m *MirrorTexture) Chain() *TextureSwapChain {
	if m == nil {
		return nil
	}
	return m.dummy
}

// DestroyMirrorTexture releases the mirror texture's dummy chain.
func (s *Session) DestroyMirrorTexture(m *MirrorTexture) {
	if m == nil {
		return
	}
	s.DestroyTextureSwapChain(m.dummy)
}
