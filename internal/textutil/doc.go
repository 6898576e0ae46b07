// Package textutil provides small text helpers for filesystem-safe names.
package textutil
