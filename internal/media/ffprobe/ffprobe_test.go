package ffprobe

import (
	"encoding/json"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "flac",
      "codec_type": "audio",
      "sample_rate": "44100",
      "channels": 2,
      "bits_per_raw_sample": "16",
      "tags": {"ENCODER": "reference libFLAC"}
    }
  ],
  "format": {
    "filename": "/music/strobe.flac",
    "nb_streams": 1,
    "duration": "637.400000",
    "bit_rate": "913000",
    "format_name": "flac",
    "tags": {
      "TITLE": "Strobe",
      "ARTIST": "deadmau5",
      "ALBUM": "For Lack of a Better Name",
      "track": "9",
      "DATE": "2009"
    }
  }
}`

func decodeSample(t *testing.T) Result {
	t.Helper()
	var result Result
	if err := json.Unmarshal([]byte(sampleJSON), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return result
}

func TestTagLookupIsCaseInsensitive(t *testing.T) {
	result := decodeSample(t)

	cases := []struct {
		name     string
		expected string
	}{
		{"title", "Strobe"},
		{"Artist", "deadmau5"},
		{"ALBUM", "For Lack of a Better Name"},
		{"TRACK", "9"},
		{"date", "2009"},
	}
	for _, tc := range cases {
		value, ok := result.Tag(tc.name)
		if !ok {
			t.Fatalf("expected tag %q to be found", tc.name)
		}
		if value != tc.expected {
			t.Fatalf("tag %q: expected %q, got %q", tc.name, tc.expected, value)
		}
	}

	if _, ok := result.Tag("genre"); ok {
		t.Fatal("expected missing tag to report not found")
	}
}

func TestFormatTagsPreferredOverStreamTags(t *testing.T) {
	result := decodeSample(t)
	result.Format.Tags["encoder"] = "container-level"

	value, ok := result.Tag("encoder")
	if !ok || value != "container-level" {
		t.Fatalf("expected container tag to win, got %q ok=%v", value, ok)
	}
}

func TestAudioStreamProperties(t *testing.T) {
	result := decodeSample(t)

	if got := result.DurationSeconds(); got < 637.3 || got > 637.5 {
		t.Fatalf("unexpected duration: %f", got)
	}
	if got := result.SampleRate(); got != 44100 {
		t.Fatalf("unexpected sample rate: %d", got)
	}
	if got := result.Channels(); got != 2 {
		t.Fatalf("unexpected channels: %d", got)
	}
	if got := result.BitDepth(); got != 16 {
		t.Fatalf("unexpected bit depth: %d", got)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("unexpected audio stream count: %d", got)
	}
}

func TestDurationFallsBackToStream(t *testing.T) {
	result := decodeSample(t)
	result.Format.Duration = ""
	result.Streams[0].Duration = "12.5"

	if got := result.DurationSeconds(); got != 12.5 {
		t.Fatalf("expected stream duration fallback, got %f", got)
	}
}

func TestBitDepthFallsBackToBitsPerSample(t *testing.T) {
	result := decodeSample(t)
	result.Streams[0].BitsPerRawSample = ""
	result.Streams[0].BitsPerSample = 24

	if got := result.BitDepth(); got != 24 {
		t.Fatalf("expected bits_per_sample fallback, got %d", got)
	}
}
