// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/xrbridge/xrmath"
)

// layerHeaderSize is the size of the layer header without the reserved
// block, and layerReservedSize the reserved block minor version 25 added.
const (
	layerHeaderSize   = 8
	layerReservedSize = 128
)

// layerReader decodes little-endian legacy layer memory.
type layerReader struct {
	buf []byte
	off int
	err error
}

func (r *layerReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	if r.off+4 > len(r.buf) {
		r.err = fmt.Errorf("xrbridge: layer truncated at offset %d", r.off)
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *layerReader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	if r.off+8 > len(r.buf) {
		r.err = fmt.Errorf("xrbridge: layer truncated at offset %d", r.off)
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *layerReader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *layerReader) f64() float64 {
	return math.Float64frombits(r.u64())
}

func (r *layerReader) vec2() xrmath.Vector2f {
	return xrmath.Vector2f{X: r.f32(), Y: r.f32()}
}

func (r *layerReader) vec3() xrmath.Vector3f {
	return xrmath.Vector3f{X: r.f32(), Y: r.f32(), Z: r.f32()}
}

func (r *layerReader) quat() xrmath.Quatf {
	return xrmath.Quatf{X: r.f32(), Y: r.f32(), Z: r.f32(), W: r.f32()}
}

func (r *layerReader) pose() xrmath.Posef {
	return xrmath.Posef{Orientation: r.quat(), Position: r.vec3()}
}

func (r *layerReader) rect() xrmath.Recti {
	return xrmath.Recti{
		Pos:  xrmath.Vector2i{X: int32(r.u32()), Y: int32(r.u32())},
		Size: xrmath.Sizei{W: int32(r.u32()), H: int32(r.u32())},
	}
}

func (r *layerReader) fovPort() xrmath.FovPort {
	return xrmath.FovPort{UpTan: r.f32(), DownTan: r.f32(), LeftTan: r.f32(), RightTan: r.f32()}
}

func (r *layerReader) matrix() xrmath.Matrix4f {
	var m xrmath.Matrix4f
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m.M[i][j] = r.f32()
		}
	}
	return m
}

func (r *layerReader) chain(s *Session) *TextureSwapChain {
	return s.chains[r.u64()]
}

// ParseLayer decodes one legacy layer from its raw client memory. Chain
// references are resolved through the session's handle arena. The header
// is always at the front; the member offset table is selected by the
// version profile, since minor version 25 moved every member by the size
// of the header's reserved block.
//
// Disabled and unrecognized layer types decode to a nil Layer.
func (s *Session) ParseLayer(raw []byte) (Layer, error) {
	if !s.alive() {
		return nil, ErrInvalidSession
	}
	r := &layerReader{buf: raw}
	typ := LayerType(r.u32())
	flags := LayerFlags(r.u32())
	if r.err != nil {
		return nil, s.bridge.setLastError(ErrInvalidParameter)
	}
	hdr := LayerHeader{Type: typ, Flags: flags}

	// Skip to where the client's layout puts the first member.
	if !s.bridge.profile.LegacyLayerLayout() {
		r.off = layerHeaderSize + layerReservedSize
	}

	var layer Layer
	switch typ {
	case LayerTypeEyeFov, LayerTypeEyeFovDepth:
		l := &LayerEyeFovDepth{}
		l.Header = hdr
		for eye := 0; eye < eyeCount; eye++ {
			l.ColorTexture[eye] = r.chain(s)
		}
		for eye := 0; eye < eyeCount; eye++ {
			l.Viewport[eye] = r.rect()
		}
		for eye := 0; eye < eyeCount; eye++ {
			l.Fov[eye] = r.fovPort()
		}
		for eye := 0; eye < eyeCount; eye++ {
			l.RenderPose[eye] = r.pose()
		}
		l.SensorSampleTime = r.f64()
		if typ == LayerTypeEyeFov {
			layer = &l.LayerEyeFov
			break
		}
		for eye := 0; eye < eyeCount; eye++ {
			l.DepthTexture[eye] = r.chain(s)
		}
		l.ProjectionDesc = TimewarpProjectionDesc{
			Projection22: r.f32(),
			Projection23: r.f32(),
			Projection32: r.f32(),
		}
		layer = l

	case LayerTypeEyeMatrix:
		l := &LayerEyeMatrix{Header: hdr}
		for eye := 0; eye < eyeCount; eye++ {
			l.ColorTexture[eye] = r.chain(s)
		}
		for eye := 0; eye < eyeCount; eye++ {
			l.Viewport[eye] = r.rect()
		}
		for eye := 0; eye < eyeCount; eye++ {
			l.RenderPose[eye] = r.pose()
		}
		for eye := 0; eye < eyeCount; eye++ {
			l.Matrix[eye] = r.matrix()
		}
		l.SensorSampleTime = r.f64()
		layer = l

	case LayerTypeQuad:
		l := &LayerQuad{Header: hdr}
		l.ColorTexture = r.chain(s)
		l.Viewport = r.rect()
		l.QuadPoseCenter = r.pose()
		l.QuadSize = r.vec2()
		layer = l

	case LayerTypeCylinder:
		l := &LayerCylinder{Header: hdr}
		l.ColorTexture = r.chain(s)
		l.Viewport = r.rect()
		l.CylinderPoseCenter = r.pose()
		l.CylinderRadius = r.f32()
		l.CylinderAngle = r.f32()
		l.CylinderAspectRatio = r.f32()
		layer = l

	case LayerTypeCube:
		l := &LayerCube{Header: hdr}
		l.Orientation = r.quat()
		l.CubeMapTexture = r.chain(s)
		layer = l

	default:
		return nil, nil
	}

	if r.err != nil {
		return nil, s.bridge.setLastError(ErrInvalidParameter)
	}
	return layer, nil
}

// ParseLayers decodes a sparse list of raw legacy layers. Nil blobs decode
// to nil entries, preserving positions so the result can be handed to
// EndFrame directly.
func (s *Session) ParseLayers(raws [][]byte) ([]Layer, error) {
	if !s.alive() {
		return nil, ErrInvalidSession
	}
	layers := make([]Layer, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		l, err := s.ParseLayer(raw)
		if err != nil {
			return nil, err
		}
		layers[i] = l
	}
	return layers, nil
}
