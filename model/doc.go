// Package model defines the contract of the animated model renderer that
// draws on top of the camera background, and loads a model, its textures
// and its motion into it.
package model
