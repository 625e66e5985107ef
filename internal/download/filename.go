package download

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// fallbackFilename is used when the server sends no usable
// Content-Disposition header.
const fallbackFilename = "osrc-release.zip"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// FilenameFromResponse derives the destination filename from the response's
// Content-Disposition header using a standards-compliant parse, falling back
// to a fixed name when the header is absent or malformed.
func FilenameFromResponse(resp *http.Response) string {
	return filenameFromHeader(resp.Header.Get("Content-Disposition"))
}

func filenameFromHeader(value string) string {
	if strings.TrimSpace(value) == "" {
		return fallbackFilename
	}
	_, params, err := mime.ParseMediaType(value)
	if err != nil {
		return fallbackFilename
	}
	name := strings.TrimSpace(params["filename"])
	if name == "" {
		return fallbackFilename
	}
	// Server-supplied names never escape the destination directory.
	name = strings.TrimSpace(fileNameReplacer.Replace(filepath.Base(name)))
	if name == "" || name == "." || name == ".." {
		return fallbackFilename
	}
	return name
}
