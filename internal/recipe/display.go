package recipe

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DescriptionLimit is the number of characters kept by TruncateDescription.
const DescriptionLimit = 50

// Ellipsis is appended to truncated descriptions.
const Ellipsis = "..."

// TruncateDescription returns the display form of a description.
//
// Descriptions longer than DescriptionLimit characters are cut to their
// first DescriptionLimit characters with Ellipsis appended. Shorter or equal
// input is returned unchanged. Characters are counted as code points of the
// NFC form, so a precomposed and a decomposed "é" count the same, but the
// kept text is always a byte prefix of s: nothing is normalized or replaced.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(norm.NFC.String(s)) <= DescriptionLimit {
		return s
	}
	return s[:prefixLen(s, DescriptionLimit)] + Ellipsis
}

// prefixLen returns the byte length of the longest prefix of s, cut at NFC
// segment boundaries, whose NFC form has at most limit code points.
func prefixLen(s string, limit int) int {
	count, cut := 0, 0
	for cut < len(s) {
		n := norm.NFC.NextBoundaryInString(s[cut:], true)
		if n <= 0 {
			n = len(s) - cut
		}
		seg := utf8.RuneCountInString(norm.NFC.String(s[cut : cut+n]))
		if count+seg > limit {
			break
		}
		count += seg
		cut += n
	}
	return cut
}
