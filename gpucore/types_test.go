package gpucore

import "testing"

func TestAlign(t *testing.T) {
	tests := []struct {
		n, down, up uint64
	}{
		{0, 0, 0},
		{1, 0, 4},
		{4, 4, 4},
		{5, 4, 8},
		{7, 4, 8},
		{1023, 1020, 1024},
	}
	for _, tt := range tests {
		if got := AlignDown(tt.n); got != tt.down {
			t.Errorf("AlignDown(%d) = %d, want %d", tt.n, got, tt.down)
		}
		if got := AlignUp(tt.n); got != tt.up {
			t.Errorf("AlignUp(%d) = %d, want %d", tt.n, got, tt.up)
		}
	}
}
