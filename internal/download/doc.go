// Package download materializes remote episode audio as local temporary
// files and validates local audio inputs. Every asset is cleaned up when the
// run ends unless the caller explicitly retains it.
package download
