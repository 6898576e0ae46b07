// Package history records completed transcriptions in a local SQLite
// database so `podscribe history` can show what was produced, when, and with
// which model tier.
package history
