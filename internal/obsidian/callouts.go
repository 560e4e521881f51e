package obsidian

import (
	"strings"
	"unicode"
)

// callout rend un bloc Obsidian :
//
//	> [!WARNING] Sous-titres automatiques
//	> corps, une ligne citée par ligne
func callout(kind, title, body string) string {
	var b strings.Builder
	b.WriteString("> [!" + calloutKind(kind) + "]")
	if title = strings.TrimSpace(title); title != "" {
		b.WriteString(" " + title)
	}
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		b.WriteString("> " + strings.TrimRight(line, " \t") + "\n")
	}
	return b.String()
}

// calloutKind : majuscules, lettres et tirets seulement ; NOTE par défaut.
func calloutKind(kind string) string {
	k := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || r == '-' {
			return unicode.ToUpper(r)
		}
		return -1
	}, kind)
	if k == "" {
		return "NOTE"
	}
	return k
}

// calloutFunc expose callout aux templates, pour un type fixé :
// {{ warning .Texte }} ou {{ warning "Titre" .Texte }}.
func calloutFunc(kind string) func(parts ...string) string {
	return func(parts ...string) string {
		switch len(parts) {
		case 0:
			return callout(kind, "", "")
		case 1:
			return callout(kind, "", parts[0])
		default:
			return callout(kind, parts[0], parts[1])
		}
	}
}
