// Package services defines the shared error taxonomy used across podscribe
// components. Errors are tagged with sentinel markers so callers can classify
// failures without string matching.
package services
