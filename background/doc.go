// Package background draws the camera image as a full-screen quad behind
// the scene.
//
// A Renderer owns the GL objects the background needs: the camera texture
// the tracker streams images into, a sampler, the shader program, a vertex
// buffer with the NDC quad, a vertex buffer with the matching camera
// texture coordinates and the vertex array tying them together. All of
// them are created in SurfaceCreated, on the render thread, all or
// nothing.
//
// Two camera texture targets are supported. TargetExternalOES uses the
// bundled GLSL ES 3.00 shaders with samplerExternalOES. Target2D compiles
// the bundled WGSL shader to GLSL ES 3.00 with naga.
package background
