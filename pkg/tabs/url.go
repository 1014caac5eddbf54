package tabs

import (
	"net/url"
	"strings"
)

// ViewerURL builds the simulator iframe URL from the viewer base page and
// the diagram/firmware document URLs. Empty parameters are omitted.
func ViewerURL(base, diagramURL, firmwareURL string) string {
	params := url.Values{}
	if diagramURL != "" {
		params.Set("diagram", diagramURL)
	}
	if firmwareURL != "" {
		params.Set("firmware", firmwareURL)
	}
	qs := params.Encode()
	if qs == "" {
		return base
	}
	return base + "?" + qs
}

// LaunchpadHref builds the ESP LaunchPad deep link for a hosted flashing
// config. The separator respects any query already present on the base URL.
func LaunchpadHref(baseURL, configURL string) string {
	sep := "/?"
	if strings.Contains(baseURL, "?") {
		sep = "/&"
	}
	return strings.TrimRight(baseURL, "/") + sep + "flashConfigURL=" + configURL
}

// joinURL joins URL segments with single slashes, trimming trailing slashes
// from each segment. Empty segments are dropped.
func joinURL(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.TrimRight(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// resolveURL turns path into an absolute URL. Absolute http(s) paths pass
// through; relative paths are resolved against prefix. An empty prefix with
// a relative path yields "".
func resolveURL(prefix, path string) string {
	if path == "" {
		return ""
	}
	if isHTTPURL(path) {
		return path
	}
	if prefix == "" {
		return ""
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
