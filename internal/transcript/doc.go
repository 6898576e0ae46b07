// Package transcript models timestamped speech-to-text output and serializes
// it to text, SRT, or JSON transcript files.
package transcript
