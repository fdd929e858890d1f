package glcore

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// FilterParam maps a filter mode to a GL_TEXTURE_{MIN,MAG}_FILTER value
// for textures without mipmaps.
func FilterParam(mode gputypes.FilterMode) int32 {
	if mode == gputypes.FilterModeNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

// WrapParam maps an address mode to a GL_TEXTURE_WRAP_* value.
// Undefined maps to clamp-to-edge.
func WrapParam(mode gputypes.AddressMode) int32 {
	switch mode {
	case gputypes.AddressModeRepeat:
		return gl.REPEAT
	case gputypes.AddressModeMirrorRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

// BlendFactor maps a blend factor to its GL enum. Undefined maps to GL_ONE.
func BlendFactor(f gputypes.BlendFactor) uint32 {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case gputypes.BlendFactorSrcAlphaSaturated:
		return gl.SRC_ALPHA_SATURATE
	case gputypes.BlendFactorConstant:
		return gl.CONSTANT_COLOR
	case gputypes.BlendFactorOneMinusConstant:
		return gl.ONE_MINUS_CONSTANT_COLOR
	default:
		return gl.ONE
	}
}

// BlendOperation maps a blend operation to its GL equation.
func BlendOperation(op gputypes.BlendOperation) uint32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return gl.FUNC_SUBTRACT
	case gputypes.BlendOperationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case gputypes.BlendOperationMin:
		return gl.MIN
	case gputypes.BlendOperationMax:
		return gl.MAX
	default:
		return gl.FUNC_ADD
	}
}

// ApplyBlend sets the blend function and equation for state. It does not
// enable GL_BLEND.
func ApplyBlend(g GL, state gputypes.BlendState) {
	g.BlendFuncSeparate(
		BlendFactor(state.Color.SrcFactor), BlendFactor(state.Color.DstFactor),
		BlendFactor(state.Alpha.SrcFactor), BlendFactor(state.Alpha.DstFactor),
	)
	g.BlendEquationSeparate(BlendOperation(state.Color.Operation), BlendOperation(state.Alpha.Operation))
}

// ApplyClearColor sets the clear color.
func ApplyClearColor(g GL, c gputypes.Color) {
	g.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}
