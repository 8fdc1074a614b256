package vorbis

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	junk := bytes.NewReader([]byte("OggS but nothing that parses as a vorbis stream here"))
	if _, err := Decode(junk); !errors.Is(err, ErrNotVorbis) {
		t.Fatalf("expected ErrNotVorbis, got %v", err)
	}
}

func TestDecodeRejectsEmptyInput(t *testing.T) {
	if _, err := Decode(bytes.NewReader(nil)); !errors.Is(err, ErrNotVorbis) {
		t.Fatalf("expected ErrNotVorbis, got %v", err)
	}
}
