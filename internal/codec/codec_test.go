package codec

import (
	"testing"
	"unicode/utf8"

	"github.com/nao1215/cribdrag/internal/model"
)

// TestEncode tests the bit layout produced for text.
func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  model.BitVector
	}{
		{
			name:  "empty string encodes to empty vector",
			input: "",
			want:  model.BitVector{},
		},
		{
			name:  "space is 00100000",
			input: " ",
			want:  model.BitVector{0, 0, 1, 0, 0, 0, 0, 0},
		},
		{
			name:  "bytes are emitted in order, msb first",
			input: "Ab",
			want: model.BitVector{
				0, 1, 0, 0, 0, 0, 0, 1,
				0, 1, 1, 0, 0, 0, 1, 0,
			},
		},
		{
			name:  "high byte keeps all eight bits",
			input: "\xff",
			want:  model.BitVector{1, 1, 1, 1, 1, 1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Encode(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("Encode(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if len(got)%8 != 0 {
				t.Errorf("expected length multiple of 8, got %d", len(got))
			}
		})
	}
}

// TestDecode tests grouping, truncation of partial bytes and placeholder padding.
func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("decodes whole bytes", func(t *testing.T) {
		t.Parallel()
		got := Decode(Encode("cat"), 3)
		if got != "cat" {
			t.Errorf("expected %q, got %q", "cat", got)
		}
	})

	t.Run("pads shortfall with placeholders", func(t *testing.T) {
		t.Parallel()
		got := Decode(Encode("ca"), 5)
		if got != "ca???" {
			t.Errorf("expected %q, got %q", "ca???", got)
		}
	})

	t.Run("empty vector renders only placeholders", func(t *testing.T) {
		t.Parallel()
		got := Decode(model.BitVector{}, 4)
		if got != "????" {
			t.Errorf("expected %q, got %q", "????", got)
		}
	})

	t.Run("discards trailing partial byte", func(t *testing.T) {
		t.Parallel()
		bits := append(Encode("hi"), 0, 1, 1)
		got := Decode(bits, 0)
		if got != "hi" {
			t.Errorf("expected %q, got %q", "hi", got)
		}
	})

	t.Run("does not truncate when longer than reference", func(t *testing.T) {
		t.Parallel()
		got := Decode(Encode("longer"), 2)
		if got != "longer" {
			t.Errorf("expected %q, got %q", "longer", got)
		}
	})
}

// TestRoundTrip verifies decode(encode(s), len(s)) == s for single-byte text.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"a",
		"Hello this is the first secret",
		"MiXeD case 123 !?",
		"\x00\x01\x7f\x80\xfe\xff",
	}

	for _, s := range inputs {
		if got := Decode(Encode(s), len(s)); got != s {
			t.Errorf("round trip of %q produced %q", s, got)
		}
	}

	// Every byte value survives on its own.
	for i := 0; i < 256; i++ {
		s := string([]byte{byte(i)})
		if got := Decode(Encode(s), 1); got != s {
			t.Errorf("round trip of byte %d produced %q", i, got)
		}
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ascii is unchanged", input: "this is ??", want: "this is ??"},
		{name: "high bytes become latin-1 characters", input: "caf\xe9", want: "café"},
		{name: "control bytes are kept", input: "\x1c\x00", want: "\x1c\x00"},
		{name: "empty stays empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Display(tt.input)
			if got != tt.want {
				t.Errorf("Display(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Display(%q) is not valid UTF-8", tt.input)
			}
		})
	}
}
