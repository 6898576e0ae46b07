// Package pipeline orchestrates one transcription run: acquire the audio,
// ensure model weights, invoke the model, persist the transcript, and clean
// up temporary files on every path. Runs are synchronous; one invocation
// processes one episode to completion.
package pipeline
