package pollinations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	llmprovider "github.com/haowjy/pollinations-llm-go"
)

func TestExtractGroundingSources_NothingToAdd(t *testing.T) {
	assert.Nil(t, extractGroundingSources(nil, sequentialIDs()))
	assert.Nil(t, extractGroundingSources(&GroundingMetadata{}, sequentialIDs()))
	assert.Nil(t, extractGroundingSources(&GroundingMetadata{
		GroundingChunks: []GroundingChunk{{}, {Web: &WebChunk{Title: "no uri"}}},
	}, sequentialIDs()))
}

func TestExtractGroundingSources_AllChunkKinds(t *testing.T) {
	meta := &GroundingMetadata{GroundingChunks: []GroundingChunk{
		{Web: &WebChunk{URI: "https://web.example", Title: "Web"}},
		{RetrievedContext: &RetrievedContextChunk{URI: "http://rag.example/page", Title: "Page"}},
		{RetrievedContext: &RetrievedContextChunk{URI: "gs://bucket/docs/report.pdf", Title: "Report"}},
		{RetrievedContext: &RetrievedContextChunk{URI: "/data/notes.md"}},
		{RetrievedContext: &RetrievedContextChunk{FileSearchStore: "fileSearchStores/store-42"}},
		{RetrievedContext: &RetrievedContextChunk{Text: "orphan"}},
		{Maps: &MapsChunk{URI: "https://maps.example/place", Title: "Cafe", PlaceID: "p1"}},
	}}

	sources := extractGroundingSources(meta, sequentialIDs())

	assert.Equal(t, []llmprovider.Source{
		{SourceType: llmprovider.SourceTypeURL, ID: "id-0", URL: "https://web.example", Title: "Web"},
		{SourceType: llmprovider.SourceTypeURL, ID: "id-1", URL: "http://rag.example/page", Title: "Page"},
		{SourceType: llmprovider.SourceTypeDocument, ID: "id-2", MediaType: "application/pdf", Title: "Report", Filename: "report.pdf"},
		{SourceType: llmprovider.SourceTypeDocument, ID: "id-3", MediaType: "text/markdown", Title: "Unknown Document", Filename: "notes.md"},
		{SourceType: llmprovider.SourceTypeDocument, ID: "id-4", MediaType: "application/octet-stream", Title: "Unknown Document", Filename: "store-42"},
		{SourceType: llmprovider.SourceTypeURL, ID: "id-5", URL: "https://maps.example/place", Title: "Cafe"},
	}, sources)
}

func TestGuessDocumentMediaType(t *testing.T) {
	tests := map[string]string{
		"a.pdf":      "application/pdf",
		"a.txt":      "text/plain",
		"a.docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"a.doc":      "application/msword",
		"a.md":       "text/markdown",
		"a.markdown": "text/markdown",
		"a.bin":      "application/octet-stream",
		"noext":      "application/octet-stream",
	}
	for uri, expected := range tests {
		assert.Equal(t, expected, guessDocumentMediaType(uri), uri)
	}
}
