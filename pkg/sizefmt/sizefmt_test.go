package sizefmt

import "testing"

func TestBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int64
		want string
	}{
		{"zero bytes", 0, "0B"},
		{"below one KiB", 1023, "1023B"},
		{"exactly one KiB", 1024, "1.0K"},
		{"one and a half KiB", 1536, "1.5K"},
		{"just below one MiB", 1048575, "1024.0K"},
		{"two MiB", 2097152, "2.0M"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Bytes(tt.size)
			if got != tt.want {
				t.Errorf("Bytes(%d) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}
