package transcript

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"podscribe/internal/textutil"
)

// DerivePath builds the default transcript location for a media reference:
// <outputDir>/<slugged basename><format ext>. URLs use the basename of their
// path component; local files use their filename. Query strings and
// extensions are discarded before slugging.
func DerivePath(outputDir, reference string, format Format) string {
	return filepath.Join(outputDir, DeriveName(reference)+format.Extension())
}

// DeriveName returns the slugged stem for a media reference.
func DeriveName(reference string) string {
	base := reference
	if parsed, err := url.Parse(reference); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		base = path.Base(parsed.Path)
	} else {
		base = filepath.Base(reference)
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	return textutil.Slug(base)
}
