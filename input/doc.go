// Package input turns host pointer events into taps and hands them from the
// input goroutine to the render goroutine.
package input
