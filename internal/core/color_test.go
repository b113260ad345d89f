package core

import "testing"

func TestColorBright(t *testing.T) {
	tests := []struct {
		in   Color
		want Color
	}{
		{ColorRed, ColorBrightRed},
		{ColorCyan, ColorBrightCyan},
		{ColorWhite, ColorBrightWhite},
		{ColorBrightBlue, ColorBrightBlue},
		{ColorGray, ColorBrightWhite},
		{ColorDefault, ColorBrightWhite},
	}

	for _, tt := range tests {
		if got := tt.in.Bright(); got != tt.want {
			t.Errorf("%d.Bright() = %d, want %d", tt.in, got, tt.want)
		}
		if !tt.in.Bright().IsBright() {
			t.Errorf("%d.Bright() should be bright", tt.in)
		}
	}
}

func TestColorIsBright(t *testing.T) {
	if ColorOrange.IsBright() || ColorGreen.IsBright() {
		t.Error("base colors are not bright")
	}
	if !ColorBrightGreen.IsBright() {
		t.Error("bright green is bright")
	}
}
