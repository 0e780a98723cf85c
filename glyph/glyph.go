// Package glyph recognises emoji grapheme clusters and edits the
// concatenated emoji strings stored in palettes.
package glyph

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/emoji"
	"github.com/rivo/uniseg"
)

func init() {
	emoji.SetupEmojisClasses()
}

// firstPictographic is the first code point that is rendered as emoji by
// default when it stands alone. Lower Emoji code points (digits, '#', '©')
// only count when followed by a modifier such as U+FE0F or U+20E3.
const firstPictographic = 0x238d

// IsEmoji reports whether s is exactly one grapheme cluster and that cluster
// is an emoji.
func IsEmoji(s string) bool {
	if s == "" {
		return false
	}
	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	if rest != "" {
		return false
	}
	return isEmojiCluster(cluster)
}

func isEmojiCluster(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	if r == utf8.RuneError || !unicode.Is(emoji.Emoji, r) {
		return false
	}
	return r >= firstPictographic || utf8.RuneCountInString(cluster) > 1
}

// First returns the first grapheme cluster of s, or "" for an empty string.
func First(s string) string {
	if s == "" {
		return ""
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster
}

// Clusters splits s into grapheme clusters.
func Clusters(s string) []string {
	var out []string
	state := -1
	for s != "" {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// Emojis keeps only the emoji clusters of s.
func Emojis(s string) string {
	var b strings.Builder
	for _, c := range Clusters(s) {
		if isEmojiCluster(c) {
			b.WriteString(c)
		}
	}
	return b.String()
}

// Dedupe removes repeated clusters, keeping the first occurrence.
func Dedupe(s string) string {
	seen := make(map[string]struct{})
	var b strings.Builder
	for _, c := range Clusters(s) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		b.WriteString(c)
	}
	return b.String()
}

// Merge prepends the emoji in add to existing, dropping non-emoji clusters
// and duplicates.
func Merge(existing, add string) string {
	return Dedupe(Emojis(add + existing))
}

// Remove deletes every occurrence of the cluster emoji from s.
func Remove(s, emoji string) string {
	var b strings.Builder
	for _, c := range Clusters(s) {
		if c != emoji {
			b.WriteString(c)
		}
	}
	return b.String()
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Width is the number of terminal cells s occupies.
func Width(s string) int {
	return uniseg.StringWidth(s)
}
