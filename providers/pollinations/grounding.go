package pollinations

import (
	"strings"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

const unknownDocumentTitle = "Unknown Document"

// extractGroundingSources converts grounding chunks into sources.
// Returns nil when there is nothing to add, whether the metadata had no
// chunks or none of its chunks produced a source.
func extractGroundingSources(meta *GroundingMetadata, generateID func() string) []llmprovider.Source {
	if meta == nil || len(meta.GroundingChunks) == 0 {
		return nil
	}

	var sources []llmprovider.Source

	for _, chunk := range meta.GroundingChunks {
		if chunk.Web != nil && chunk.Web.URI != "" {
			sources = append(sources, llmprovider.Source{
				SourceType: llmprovider.SourceTypeURL,
				ID:         generateID(),
				URL:        chunk.Web.URI,
				Title:      chunk.Web.Title,
			})
			continue
		}

		if rc := chunk.RetrievedContext; rc != nil {
			if source, ok := retrievedContextSource(rc, generateID); ok {
				sources = append(sources, source)
			}
			continue
		}

		if chunk.Maps != nil && chunk.Maps.URI != "" {
			sources = append(sources, llmprovider.Source{
				SourceType: llmprovider.SourceTypeURL,
				ID:         generateID(),
				URL:        chunk.Maps.URI,
				Title:      chunk.Maps.Title,
			})
		}
	}

	if len(sources) == 0 {
		return nil
	}
	return sources
}

// retrievedContextSource maps a RAG chunk: http(s) URIs become URL sources,
// other URIs (gs://, file paths) and bare file search stores become documents.
func retrievedContextSource(rc *RetrievedContextChunk, generateID func() string) (llmprovider.Source, bool) {
	switch {
	case strings.HasPrefix(rc.URI, "http://") || strings.HasPrefix(rc.URI, "https://"):
		return llmprovider.Source{
			SourceType: llmprovider.SourceTypeURL,
			ID:         generateID(),
			URL:        rc.URI,
			Title:      rc.Title,
		}, true

	case rc.URI != "":
		return llmprovider.Source{
			SourceType: llmprovider.SourceTypeDocument,
			ID:         generateID(),
			MediaType:  guessDocumentMediaType(rc.URI),
			Title:      titleOrUnknown(rc.Title),
			Filename:   lastPathSegment(rc.URI),
		}, true

	case rc.FileSearchStore != "":
		return llmprovider.Source{
			SourceType: llmprovider.SourceTypeDocument,
			ID:         generateID(),
			MediaType:  "application/octet-stream",
			Title:      titleOrUnknown(rc.Title),
			Filename:   lastPathSegment(rc.FileSearchStore),
		}, true
	}

	return llmprovider.Source{}, false
}

func guessDocumentMediaType(uri string) string {
	switch {
	case strings.HasSuffix(uri, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(uri, ".txt"):
		return "text/plain"
	case strings.HasSuffix(uri, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(uri, ".doc"):
		return "application/msword"
	case strings.HasSuffix(uri, ".md"), strings.HasSuffix(uri, ".markdown"):
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}

func titleOrUnknown(title string) string {
	if title == "" {
		return unknownDocumentTitle
	}
	return title
}

func lastPathSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
