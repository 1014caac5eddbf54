package tabs

import "testing"

func TestViewerURL(t *testing.T) {
	tests := []struct {
		name     string
		diagram  string
		firmware string
		want     string
	}{
		{
			name:     "Both",
			diagram:  "https://x/d.json",
			firmware: "https://x/fw.bin",
			want:     "https://viewer.example.com/?diagram=https%3A%2F%2Fx%2Fd.json&firmware=https%3A%2F%2Fx%2Ffw.bin",
		},
		{
			name:     "FirmwareOnly",
			firmware: "https://x/fw.bin",
			want:     "https://viewer.example.com/?firmware=https%3A%2F%2Fx%2Ffw.bin",
		},
		{
			name: "Neither",
			want: "https://viewer.example.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewerURL("https://viewer.example.com/", tt.diagram, tt.firmware)
			if got != tt.want {
				t.Errorf("ViewerURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLaunchpadHref(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		config string
		want   string
	}{
		{
			name:   "PlainBase",
			base:   "https://espressif.github.io/esp-launchpad/",
			config: "https://x/launchpad.toml",
			want:   "https://espressif.github.io/esp-launchpad/?flashConfigURL=https://x/launchpad.toml",
		},
		{
			name:   "BaseWithQuery",
			base:   "https://espressif.github.io/esp-launchpad?utm=docs",
			config: "https://x/launchpad.toml",
			want:   "https://espressif.github.io/esp-launchpad?utm=docs/&flashConfigURL=https://x/launchpad.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LaunchpadHref(tt.base, tt.config); got != tt.want {
				t.Errorf("LaunchpadHref = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{name: "TrailingSlashes", segments: []string{"https://x/", "a/", "b"}, want: "https://x/a/b"},
		{name: "EmptySegmentsDropped", segments: []string{"https://x", "", "b"}, want: "https://x/b"},
		{name: "Single", segments: []string{"https://x/"}, want: "https://x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinURL(tt.segments...); got != tt.want {
				t.Errorf("joinURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		path   string
		want   string
	}{
		{name: "AbsolutePassesThrough", prefix: "https://server", path: "https://cdn/x.bin", want: "https://cdn/x.bin"},
		{name: "RelativeResolved", prefix: "https://server/", path: "/x.bin", want: "https://server/x.bin"},
		{name: "RelativeNoPrefix", prefix: "", path: "x.bin", want: ""},
		{name: "EmptyPath", prefix: "https://server", path: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveURL(tt.prefix, tt.path); got != tt.want {
				t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.prefix, tt.path, got, tt.want)
			}
		})
	}
}
