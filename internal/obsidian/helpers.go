package obsidian

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/ytranscript/internal/subtitles"
)

// yamlListBlock retourne une liste YAML en bloc, à placer après "clé:".
func yamlListBlock(xs []string) string {
	if len(xs) == 0 {
		return " []" // note l'espace: on l'utilise après 'tags:'
	}
	var b strings.Builder
	for _, s := range xs {
		// on quote pour sécurité (c'est valide YAML): - "mon tag"
		b.WriteString("\n  - ")
		b.WriteString(strconv.Quote(s))
	}
	return b.String()
}

// joinHashtagsPure : ajoute '#' quand il manque et join par espace.
func joinHashtagsPure(xs []string) string {
	out := make([]string, 0, len(xs))
	for _, h := range xs {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		out = append(out, h)
	}
	return strings.Join(out, " ")
}

// markdownListPure génère des lignes "- item" (avec saut final).
// Usage dans template : {{ markdownList .OtherTracks }}
func markdownListPure(xs []string) string {
	var b strings.Builder
	for _, s := range xs {
		trim := strings.TrimSpace(s)
		if trim == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(trim)
		b.WriteString("\n")
	}
	return b.String()
}

// formatSegmentsPure : un paragraphe par segment, précédé de son horodatage
// cliquable. Sans lien (DeepLink vide), l'horodatage est en gras.
func formatSegmentsPure(segs []subtitles.DisplaySegment) string {
	if len(segs) == 0 {
		return "_(aucun sous-titre)_\n"
	}
	var b strings.Builder
	for i, s := range segs {
		if i > 0 {
			b.WriteString("\n")
		}
		text := strings.TrimSpace(s.Text)
		if s.DeepLink == "" {
			fmt.Fprintf(&b, "**%s** %s\n", s.Label, text)
			continue
		}
		fmt.Fprintf(&b, "[%s](%s) %s\n", s.Label, s.DeepLink, text)
	}
	return b.String()
}
