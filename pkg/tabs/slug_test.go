package tabs

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "ESP32", want: "esp32"},
		{in: "ESP32-S3", want: "esp32-s3"},
		{in: "My Board", want: "my-board"},
		{in: "  spaced   out  ", want: "spaced-out"},
		{in: "sketch.ino", want: "sketch-ino"},
		{in: "a__b", want: "a-b"},
		{in: "--edges--", want: "edges"},
		{in: "Überboard", want: "berboard"},
		{in: "日本語", want: ""},
		{in: "", want: ""},
		{in: "already-a-slug", want: "already-a-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slug(tt.in)
			if got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Slug(got); again != got {
				t.Errorf("Slug not idempotent: Slug(%q) = %q", got, again)
			}
		})
	}
}
