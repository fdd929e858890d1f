// Package compositor runs the per-frame pipeline of the AR view.
//
// Each frame it clears the framebuffer, pulls the newest frame from the
// tracking session, re-projects the camera background when the display
// geometry changes, turns at most one queued tap into a model anchor,
// draws the camera image and finally asks the model renderer to draw the
// model at its anchor with the camera's view and projection.
//
// All Compositor methods must be called on the render thread.
package compositor
