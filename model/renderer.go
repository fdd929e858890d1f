package model

import (
	"github.com/gogpu/arcam/internal/logx"
)

// Renderer draws an animated model with caller-supplied transforms. All
// methods are called on the render thread with the GL context current.
type Renderer interface {
	// Initialize prepares GPU state for a viewport of the given size.
	Initialize(width, height int) error
	LoadModel(data []byte) error
	// LoadTexture registers a texture referenced by the model under name,
	// its path relative to the model directory. updateBind asks the
	// renderer to rebind materials immediately.
	LoadTexture(name string, data []byte, updateBind bool) error
	LoadMotion(data []byte) error
	Play()
	// RedrawFrom draws one frame. Matrices are column-major.
	RedrawFrom(model, view, projection [16]float32)
}

// TextureBinder is implemented by renderers that bind loaded textures to
// materials in one pass after all textures are loaded.
type TextureBinder interface {
	UpdateBindTexture()
}

// NopRenderer accepts everything and draws nothing. Frames are logged at
// debug level.
type NopRenderer struct {
	Frames int
}

var _ Renderer = (*NopRenderer)(nil)

func (r *NopRenderer) Initialize(width, height int) error {
	logx.L().Debug("model: initialize", "width", width, "height", height)
	return nil
}

func (r *NopRenderer) LoadModel(data []byte) error {
	logx.L().Debug("model: load model", "bytes", len(data))
	return nil
}

func (r *NopRenderer) LoadTexture(name string, data []byte, _ bool) error {
	logx.L().Debug("model: load texture", "name", name, "bytes", len(data))
	return nil
}

func (r *NopRenderer) LoadMotion(data []byte) error {
	logx.L().Debug("model: load motion", "bytes", len(data))
	return nil
}

func (r *NopRenderer) Play() {}

func (r *NopRenderer) RedrawFrom(model, _, _ [16]float32) {
	r.Frames++
	logx.L().Debug("model: redraw", "frame", r.Frames, "translation", model[12:15])
}
