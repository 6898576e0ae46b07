// Package notifications sends optional ntfy push notifications when a
// transcription finishes or fails. Without a configured topic every call is
// a no-op.
package notifications
