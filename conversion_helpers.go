package llmprovider

import (
	"encoding/base64"
	"regexp"
	"strings"
)

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)

// IsBase64 reports whether s already looks like standard base64:
// only the base64 alphabet with trailing padding, length a multiple of 4.
func IsBase64(s string) bool {
	if s == "" {
		return false
	}
	return len(s)%4 == 0 && base64Pattern.MatchString(s)
}

// ToBase64String returns s unchanged when it is already base64,
// otherwise the standard base64 encoding of its UTF-8 bytes.
//
// Short plain words whose length is a multiple of 4 (e.g. "test") are
// indistinguishable from base64 and pass through unchanged.
func ToBase64String(s string) string {
	if IsBase64(s) {
		return s
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// ToBase64Bytes encodes raw bytes as standard base64.
func ToBase64Bytes(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DataURI builds a "data:<mediaType>;base64,<payload>" URI.
func DataURI(mediaType, b64 string) string {
	var sb strings.Builder
	sb.Grow(len(mediaType) + len(b64) + 13)
	sb.WriteString("data:")
	sb.WriteString(mediaType)
	sb.WriteString(";base64,")
	sb.WriteString(b64)
	return sb.String()
}

// FileDataURL resolves a file part to a URL usable by OpenAI-compatible
// image_url parts. Remote URLs pass through; inline data becomes a data URI
// using mediaType (callers normalize wildcards first).
func FileDataURL(part FilePart, mediaType string) string {
	if part.URL != "" {
		return part.URL
	}
	if part.Data != nil {
		return DataURI(mediaType, ToBase64Bytes(part.Data))
	}
	return DataURI(mediaType, ToBase64String(part.StringData))
}
