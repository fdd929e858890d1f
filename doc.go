// Package arcam renders a tracked camera feed as a scene background and
// composites an animated 3D model on top of it, anchored to a real-world
// surface.
//
// # Overview
//
// A View ties together the pieces a host UI needs:
//   - a session.Manager that creates, resumes, pauses and closes the
//     tracking session as the host moves through its lifecycle
//   - a background.Renderer that owns the GL objects drawing the camera
//     image and follows display rotation
//   - a compositor.Compositor that runs the per-frame pipeline: frame
//     acquisition, tap hit-testing, anchor placement and transforms
//   - an input.TapDetector feeding a bounded, non-blocking tap queue
//
// # Quick Start
//
//	provider, _ := tracking.Lookup(tracking.ProviderPlatform)
//	view := arcam.NewView(provider, glContext, modelRenderer,
//	    arcam.WithPermissions(perms),
//	    arcam.WithAssets(os.DirFS(filesDir), model.Assets{
//	        Model:  "model/miku/miku.pmx",
//	        Motion: "motion/dance.vmd",
//	    }))
//
//	// Host lifecycle:
//	view.LifecycleEvent(session.PhaseResumed)
//
//	// Render thread, with the GL context current:
//	view.SurfaceCreated()
//	view.SurfaceChanged(width, height)
//	for running {
//	    view.DrawFrame()
//	}
//
//	// Input thread:
//	view.TouchEvent(ev)
//
// # Threads
//
// SurfaceCreated, SurfaceChanged, SurfaceDestroyed and DrawFrame must be
// called on the thread owning the GL context. LifecycleEvent and
// TouchEvent may be called from any goroutine.
//
// # Coordinate System
//
// Matrices are column-major, as GL expects. Tap positions are view pixels
// with the origin at the top left.
package arcam

// Version is the current version of the library.
const Version = "0.1.0"
