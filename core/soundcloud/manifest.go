package soundcloud

import "strings"

// parseManifest extracts segment URLs from a line-oriented HLS playlist.
// Comment lines (leading '#') and blanks are skipped. Relative references
// resolve against the manifest's own directory, i.e. the manifest URL with
// its last path component dropped — this mirrors how SoundCloud's player
// resolves them, not RFC 3986 reference resolution.
func parseManifest(manifestURL, body string) []string {
	var baseURL string
	if idx := strings.LastIndex(manifestURL, "/"); idx >= 0 {
		baseURL = manifestURL[:idx]
	} else {
		baseURL = manifestURL
	}

	var segments []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "http") {
			segments = append(segments, line)
		} else {
			segments = append(segments, baseURL+"/"+line)
		}
	}
	return segments
}
