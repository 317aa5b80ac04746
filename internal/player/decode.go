package player

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for audio that is neither MP3, FLAC nor
// WAV.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

type container int

const (
	unknown container = iota
	mp3Container
	flacContainer
	wavContainer
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// decode picks a decoder from the leading bytes of data, falling back to
// the file suffix. Servers that transcode may send a format other than the
// one the suffix names.
func decode(suffix string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	kind := sniff(data)
	if kind == unknown {
		kind = fromSuffix(suffix)
	}
	offset := 0
	if kind == flacContainer {
		// Some taggers prepend ID3v2 to FLAC files.
		offset = id3v2Size(data)
	}
	r := memFile{bytes.NewReader(data[offset:])}

	switch kind {
	case mp3Container:
		return decodeGoMP3(r)
	case flacContainer:
		return flac.Decode(r)
	case wavContainer:
		return wav.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, suffix)
	}
}

func sniff(data []byte) container {
	body := data[id3v2Size(data):]
	switch {
	case bytes.HasPrefix(body, []byte("fLaC")):
		return flacContainer
	case len(body) >= 12 && bytes.HasPrefix(body, []byte("RIFF")) && string(body[8:12]) == "WAVE":
		return wavContainer
	case len(body) >= 2 && body[0] == 0xFF && body[1]&0xE0 == 0xE0:
		return mp3Container
	case len(body) < len(data):
		// ID3v2 without a recognized payload is almost always MP3.
		return mp3Container
	}
	return unknown
}

func fromSuffix(suffix string) container {
	switch strings.ToLower(strings.TrimPrefix(suffix, ".")) {
	case "mp3":
		return mp3Container
	case "flac":
		return flacContainer
	case "wav":
		return wavContainer
	}
	return unknown
}

// id3v2Size returns the length of a leading ID3v2 tag, header included, or
// 0. The size is a syncsafe integer in bytes 6-9.
func id3v2Size(data []byte) int {
	if len(data) < 10 || string(data[:3]) != "ID3" {
		return 0
	}
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	return min(10+size, len(data))
}
