// Package session owns the tracking session across host lifecycle
// transitions.
//
// A Manager creates the session lazily on the first resume once camera
// permission is granted and the tracking runtime is installed, pauses it
// without destroying it, and closes it when the host is destroyed. Every
// failure is reported through a single error handler; none panics.
//
// Frame code reads the session through Manager.Do, which excludes
// lifecycle changes for the duration of the callback.
package session
