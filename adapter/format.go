package adapter

import "strings"

// Format is the document dialect used for Load/Save decisions when an
// explicit override isn't given. The zero value, FormatAuto, means "detect
// from the file extension."
type Format int

const (
	// FormatAuto detects the format from the path's extension: ".json"
	// selects FormatJSON, anything else (including no extension)
	// selects FormatXJS.
	FormatAuto Format = iota
	// FormatJSON is strict RFC 8259 JSON.
	FormatJSON
	// FormatXJS covers .xjs and .jsonc: comments, unquoted keys/values,
	// trailing commas, root-brace omission.
	FormatXJS
)

func detectFormat(path string) Format {
	ext := fileExt(path)
	if strings.EqualFold(ext, ".json") {
		return FormatJSON
	}
	return FormatXJS
}

func fileExt(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[idx:]
}

func resolveFormat(path string, override Format) Format {
	if override == FormatAuto {
		return detectFormat(path)
	}
	return override
}
