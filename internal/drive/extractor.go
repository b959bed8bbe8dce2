// Package drive resolves Google Drive share links into in-memory image
// payloads for report embedding.
package drive

import "regexp"

// Patterns for the two common share-link shapes:
//
//	https://drive.google.com/open?id=FILEID
//	https://drive.google.com/file/d/FILEID/view
var fileIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`id=([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`/d/([A-Za-z0-9_-]+)/`),
}

// ExtractFileID returns the file ID embedded in a share link, or "" when
// the link matches neither known shape. The empty result is a skip signal,
// not an error.
func ExtractFileID(link string) string {
	for _, p := range fileIDPatterns {
		if m := p.FindStringSubmatch(link); m != nil {
			return m[1]
		}
	}
	return ""
}
