package model

import (
	"fmt"
	"strings"
)

// CaptionTrack décrit une piste de sous-titres disponible pour une vidéo,
// telle qu'annoncée par le manifeste de la page YouTube.
type CaptionTrack struct {
	DisplayName  string `json:"display_name"`
	SourceLink   string `json:"source_link"`
	LanguageCode string `json:"language_code,omitempty"`
	Kind         string `json:"kind,omitempty"` // "asr" pour les sous-titres automatiques
}

// IsAutomatic indique si la piste est générée automatiquement (ASR).
func (c CaptionTrack) IsAutomatic() bool {
	return c.Kind == "asr"
}

func (c CaptionTrack) String() string {
	return fmt.Sprintf("CaptionTrack(name=%q, lang=%s, kind=%s)", c.DisplayName, c.LanguageCode, c.Kind)
}

// Slug retourne un identifiant court pour nommer les fichiers : le code langue
// si connu, sinon le nom affiché.
func (c CaptionTrack) Slug() string {
	s := strings.TrimSpace(c.LanguageCode)
	if s == "" {
		s = strings.TrimSpace(c.DisplayName)
	}
	if s == "" {
		return "und"
	}
	if c.IsAutomatic() {
		s += "-auto"
	}
	return s
}

// Tracks est une liste ordonnée de pistes (ordre de préférence).
type Tracks []CaptionTrack

// Names retourne les noms affichés dans l'ordre.
func (t Tracks) Names() []string {
	out := make([]string, 0, len(t))
	for _, c := range t {
		out = append(out, c.DisplayName)
	}
	return out
}

// Pretty retourne une liste multi-lignes simple, la piste retenue en premier.
func (t Tracks) Pretty() string {
	if len(t) == 0 {
		return "Pistes : (aucune)\n"
	}
	var b strings.Builder
	b.WriteString("Pistes :\n")
	for i, c := range t {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Fprintf(&b, "  %s %s", marker, c.DisplayName)
		if c.LanguageCode != "" {
			fmt.Fprintf(&b, " (%s)", c.LanguageCode)
		}
		b.WriteString("\n")
	}
	return b.String()
}
