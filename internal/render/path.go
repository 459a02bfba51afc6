package render

import "strings"

// SourceExtension is the recognized diagram source suffix.
const SourceExtension = ".puml"

// DerivePath maps a diagram source path to its artifact destination in the
// same directory: a trailing ".puml" is swapped for the artifact extension,
// any other path gets the extension appended.
func DerivePath(sourcePath, format string) string {
	if strings.HasSuffix(sourcePath, SourceExtension) {
		return strings.TrimSuffix(sourcePath, SourceExtension) + "." + format
	}
	return sourcePath + "." + format
}
