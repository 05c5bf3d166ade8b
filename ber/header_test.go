package ber

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/glowproto/ember"
	"github.com/glowproto/ember/bytebuf"
)

func TestHeader_Encode(t *testing.T) {
	tests := map[string]struct {
		Header
		want []byte
	}{
		"EndOfContents": {Header{}, []byte{0x00, 0x00}},
		"UTF8String":    {Header{ember.Universal(ember.TagUTF8String), 5, false}, []byte{0x0C, 0x05}},
		"HighTag":       {Header{ember.Universal(31), 0, false}, []byte{0x1F, 0x1F, 0x00}},
		"LongTag":       {Header{ember.Context(173), 8, true}, []byte{0xBF, 0x81, 0x2D, 0x08}},
		"Application":   {Header{ember.Application(11), 2, true}, []byte{0x6B, 0x02}},
		"Sequence":      {Header{ember.Universal(ember.TagSequence), 60, true}, []byte{0x30, 60}},
		"LongSequence":  {Header{ember.Universal(ember.TagSequence), 746, true}, []byte{0x30, 0x80 | 0x02, 0x02, 0xEA}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.Header.EncodedLength(); got != len(tt.want) {
				t.Errorf("EncodedLength() = %v, want %v", got, len(tt.want))
			}
			buf := bytebuf.New(tt.Header.EncodedLength())
			if err := tt.Header.Encode(buf); err != nil {
				t.Errorf("Encode() error = %v, want nil", err)
			}
			if got := buf.Bytes(); !slices.Equal(tt.want, got) {
				t.Errorf("Encode() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestHeader_Encode_indefinite(t *testing.T) {
	h := Header{ember.Universal(ember.TagSequence), LengthIndefinite, true}
	err := h.Encode(bytebuf.New(4))
	if !errors.Is(err, ErrUnsupportedLengthForm) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedLengthForm", err)
	}
	// EncodedLength mirrors Encode: no definite-form encoding, no size.
	if got := h.EncodedLength(); got != 0 {
		t.Errorf("EncodedLength() = %d, want 0", got)
	}
}

func TestDecodeHeader(t *testing.T) {
	tests := map[string]struct {
		data       []byte
		extraBytes int
		want       Header
		wantErr    error
	}{
		"EndOfContents":      {[]byte{0x00, 0x00}, 0, Header{}, nil},
		"UTF8String":         {[]byte{0x0C, 0x05, 0x00}, 1, Header{ember.Universal(ember.TagUTF8String), 5, false}, nil},
		"HighTag":            {[]byte{0x1F, 0x1F, 0x00}, 0, Header{ember.Universal(31), 0, false}, nil},
		"LongTag":            {[]byte{0xBF, 0x81, 0x2D, 0x08, 0x00, 0x00}, 2, Header{ember.Context(173), 8, true}, nil},
		"Sequence":           {[]byte{0x30, 60}, 0, Header{ember.Universal(ember.TagSequence), 60, true}, nil},
		"LongSequence":       {[]byte{0x30, 0x80 | 0x02, 0x02, 0xEA}, 0, Header{ember.Universal(ember.TagSequence), 746, true}, nil},
		"IndefiniteSequence": {[]byte{0x30, 0x80}, 0, Header{ember.Universal(ember.TagSequence), LengthIndefinite, true}, nil},

		"EOF":                 {nil, 0, Header{}, io.EOF},
		"NoLength":            {[]byte{0x30}, 0, Header{}, ErrTruncated},
		"ShortTag":            {[]byte{0xBF, 0x81}, 0, Header{}, ErrTruncated},
		"ShortLength":         {[]byte{0x30, 0x80 | 0x02, 0x02}, 0, Header{}, ErrTruncated},
		"NonMinimalTag":       {[]byte{0x1F, 0x80, 0x81, 0x2D, 0x00}, 0, Header{}, ErrMalformedTag},
		"TagOverflow":         {[]byte{0x1F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F, 0x00}, 0, Header{}, ErrMalformedTag},
		"IndefinitePrimitive": {[]byte{0x04, 0x80}, 0, Header{}, ErrMalformedLength},
		"HugeLength":          {[]byte{0x04, 0x89, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 0, Header{}, ErrMalformedLength},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			got, err := DecodeHeader(r)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodeHeader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got != tt.want {
				t.Errorf("DecodeHeader() = %v, want %v", got, tt.want)
			}
			if r.Len() != tt.extraBytes {
				t.Errorf("DecodeHeader() extra bytes = %d, want %d", r.Len(), tt.extraBytes)
			}
		})
	}
}

func TestHeader_roundTrip(t *testing.T) {
	headers := []Header{
		{ember.Universal(ember.TagNull), 0, false},
		{ember.Universal(ember.TagInteger), 1, false},
		{ember.Universal(30), 127, false},
		{ember.Universal(31), 128, false},
		{ember.Context(0), 3, true},
		{ember.Application(1000), 65536, true},
		{ember.Tag{Class: ember.ClassPrivate, Number: 5}, 255, false},
	}
	for _, h := range headers {
		buf := bytebuf.New(h.EncodedLength())
		if err := h.Encode(buf); err != nil {
			t.Fatalf("Encode(%v) error = %v", h, err)
		}
		if buf.Len() != h.EncodedLength() {
			t.Errorf("Encode(%v) wrote %d bytes, EncodedLength() = %d", h, buf.Len(), h.EncodedLength())
		}
		got, err := DecodeHeader(buf)
		if err != nil {
			t.Fatalf("DecodeHeader(%v) error = %v", h, err)
		}
		if got != h {
			t.Errorf("round trip = %v, want %v", got, h)
		}
	}
}
