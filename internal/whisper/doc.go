// Package whisper manages local whisper.cpp speech-to-text: the model weight
// cache, audio preparation through ffmpeg, and the whisper-cli invocation.
// The model itself is an opaque external capability; this package only
// handles plumbing around it.
package whisper
