package mp3

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	junk := bytes.NewReader([]byte("this is plain text pretending to be an mp3 stream"))
	if _, err := Decode(junk); !errors.Is(err, ErrNotMP3) {
		t.Fatalf("expected ErrNotMP3, got %v", err)
	}
}

func TestDecodeRejectsEmptyInput(t *testing.T) {
	if _, err := Decode(bytes.NewReader(nil)); !errors.Is(err, ErrNotMP3) {
		t.Fatalf("expected ErrNotMP3, got %v", err)
	}
}
