// Package medialink validates media links before they are stored on an item.
package medialink

import (
	"errors"
	"regexp"
)

var ErrInvalidMediaLink = errors.New("invalid media link")

// Accepted hosts mirror the upstream list: direct https links to a small set
// of video hosts. Query strings and fragments are rejected wholesale rather
// than sanitized.
var linkPattern = regexp.MustCompile(`^https://(www\.)?(youtube\.com/watch\?v=[A-Za-z0-9_-]{11}|youtu\.be/[A-Za-z0-9_-]{11}|twitch\.tv/videos/\d+|vimeo\.com/\d+)$`)

// Validate checks the link format and returns the canonical form to store.
func Validate(link string) (string, error) {
	if !linkPattern.MatchString(link) {
		return "", ErrInvalidMediaLink
	}
	return link, nil
}
