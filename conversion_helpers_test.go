package llmprovider

import (
	"testing"
	"time"
)

func TestIsBase64(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"aGVsbG8=", true},
		{"aGVsbA==", true},
		{"YWJj", true},
		{"test", true}, // indistinguishable from base64
		{"hello", false},
		{"aGVsbG8", false},
		{"not base64!", false},
		{"a=bc", false},
	}

	for _, tt := range tests {
		if got := IsBase64(tt.in); got != tt.want {
			t.Errorf("IsBase64(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToBase64String(t *testing.T) {
	if got := ToBase64String("aGVsbG8="); got != "aGVsbG8=" {
		t.Errorf("base64 input should pass through, got %q", got)
	}
	if got := ToBase64String("hello"); got != "aGVsbG8=" {
		t.Errorf("ToBase64String(hello) = %q", got)
	}
	if got := ToBase64Bytes([]byte{0xff, 0x00}); got != "/wA=" {
		t.Errorf("ToBase64Bytes() = %q", got)
	}
}

func TestFileDataURL(t *testing.T) {
	tests := []struct {
		name      string
		part      FilePart
		mediaType string
		want      string
	}{
		{
			name:      "remote url passes through",
			part:      FilePart{MediaType: "image/png", URL: "https://img.example/a.png", Data: []byte("ignored")},
			mediaType: "image/png",
			want:      "https://img.example/a.png",
		},
		{
			name:      "raw bytes",
			part:      FilePart{MediaType: "image/png", Data: []byte("hello")},
			mediaType: "image/png",
			want:      "data:image/png;base64,aGVsbG8=",
		},
		{
			name:      "base64 string",
			part:      FilePart{MediaType: "image/*", StringData: "aGVsbG8="},
			mediaType: "image/jpeg",
			want:      "data:image/jpeg;base64,aGVsbG8=",
		},
		{
			name:      "plain string is encoded",
			part:      FilePart{MediaType: "image/gif", StringData: "hello"},
			mediaType: "image/gif",
			want:      "data:image/gif;base64,aGVsbG8=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileDataURL(tt.part, tt.mediaType); got != tt.want {
				t.Errorf("FileDataURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSeed(t *testing.T) {
	if got := ResolveSeed(intPtr(42)); got != 42 {
		t.Errorf("ResolveSeed(42) = %d", got)
	}
	if got := ResolveSeed(intPtr(0)); got != 0 {
		t.Errorf("ResolveSeed(0) = %d, an explicit zero must be kept", got)
	}

	now := time.UnixMilli(1_700_000_000_123)
	want := int(int64(1_700_000_000_123) % maxSeed)
	if got := resolveSeedAt(nil, now); got != want {
		t.Errorf("resolveSeedAt(nil) = %d, want %d", got, want)
	}

	later := resolveSeedAt(nil, now.Add(5*time.Millisecond))
	if later != want+5 {
		t.Errorf("clock-derived seed should follow the clock: got %d, want %d", later, want+5)
	}

	if got := ResolveSeed(nil); got < 0 || got >= maxSeed {
		t.Errorf("ResolveSeed(nil) = %d, out of range", got)
	}
}
