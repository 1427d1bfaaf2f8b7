// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package normalize derives the filesystem-safe short title used for
// exported key files and config host blocks.
package normalize

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyTitle is returned when a title consists only of stripped
// keywords and separators, which would produce an empty file name.
var ErrEmptyTitle = errors.New("title normalizes to an empty short title")

// titleScrub removes the "ssh key" keyword stems ("ssh-key", "ssh key",
// bare "ssh") and every character that is not an ASCII letter. Single
// pass, leftmost-first, mirroring the behavior the config format grew up
// with.
var titleScrub = regexp.MustCompile(`(ssh([ -]key)?)|[^a-z]+`)

// ShortTitle converts an item title into its short form: lower-cased,
// keyword stems removed, non-letters stripped. The result is stable for
// identical input. Titles that reduce to nothing yield ErrEmptyTitle;
// distinct titles may still collide, in which case the last write wins.
func ShortTitle(title string) (string, error) {
	short := titleScrub.ReplaceAllString(strings.ToLower(title), "")
	if short == "" {
		return "", ErrEmptyTitle
	}
	return short, nil
}
