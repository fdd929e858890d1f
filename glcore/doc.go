// Package glcore defines the OpenGL ES 3.0 call surface used by the camera
// background and the frame compositor, and the helpers that turn the GL
// error queue into Go errors.
//
// On Linux and Android the surface is satisfied by *gl.Context from
// github.com/gogpu/wgpu/hal/gles/gl, loaded from the current EGL context
// with LoadCurrent. Tests and headless tools use the recording
// implementation in glcore/glnoop.
package glcore
