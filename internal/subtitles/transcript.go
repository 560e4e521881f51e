package subtitles

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/patrickprogramme/ytranscript/internal/fsutil"
	"github.com/patrickprogramme/ytranscript/pkg/model"
)

// Transcript représente le résultat d'un passage complet du pipeline
// (pistes -> cues -> segments -> rendu) pour une vidéo.
type Transcript struct {
	VideoID  string             `json:"video_id"`
	Track    model.CaptionTrack `json:"track"`
	Segments []DisplaySegment   `json:"segments"`
}

// NewTranscript construit un Transcript à partir de données déjà prêtes.
// - pure function, pas d'I/O ni de parsing.
func NewTranscript(videoID string, track model.CaptionTrack, segments []DisplaySegment) Transcript {
	return Transcript{
		VideoID:  videoID,
		Track:    track,
		Segments: segments,
	}
}

// Plain retourne le transcript lisible : un paragraphe par bloc,
// précédé de son horodatage.
//
//	[01:05] texte du paragraphe
func (t Transcript) Plain() string {
	if len(t.Segments) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range t.Segments {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n", s.Label, strings.TrimSpace(s.Text))
	}
	return b.String()
}

// Collapsed retourne tout le texte en un seul paragraphe, sans horodatage.
func (t Transcript) Collapsed() string {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		if txt := strings.TrimSpace(s.Text); txt != "" {
			parts = append(parts, txt)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + "\n"
}

// JSON retourne le transcript indenté.
func (t Transcript) JSON() ([]byte, error) {
	segs := t.Segments
	if segs == nil {
		segs = []DisplaySegment{}
	}
	t.Segments = segs
	out, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("transcript json: %w", err)
	}
	return append(out, '\n'), nil
}

// Filename compose le nom du fichier de sortie, ex : "dQw4w9WgXcQ (en).md".
func (t Transcript) Filename(format model.Format) (string, error) {
	switch format {
	case model.FormatTXT, model.FormatMARKDOWN, model.FormatJSON:
	default:
		return "", fmt.Errorf("format inconnu dans Filename: %q", format)
	}
	base := fsutil.SanitizeFilename(t.VideoID)
	return fmt.Sprintf("%s (%s)%s", base, fsutil.SanitizeFilename(t.Track.Slug()), format.Extension()), nil
}

// RawFilename : nom du document timedtext brut, ex : "dQw4w9WgXcQ (en).xml".
func (t Transcript) RawFilename() string {
	base := fsutil.SanitizeFilename(t.VideoID)
	return fmt.Sprintf("%s (%s).xml", base, fsutil.SanitizeFilename(t.Track.Slug()))
}
