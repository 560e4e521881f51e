package subtitles

import (
	"fmt"
	"net/url"

	"github.com/patrickprogramme/ytranscript/pkg/model"
)

const baseWatchURL = "https://www.youtube.com/watch?v="

// DeepLink retourne le lien vers la vidéo positionné à secs.
func DeepLink(videoID string, secs model.Seconds) string {
	return fmt.Sprintf("%s%s&t=%ds", baseWatchURL, url.QueryEscape(videoID), int64(secs))
}

// Render transforme les segments en DisplaySegment : libellé horaire,
// lien profond et texte inchangé. Fonction pure, l'ordre est conservé.
func Render(segments []Segment, videoID string) []DisplaySegment {
	out := make([]DisplaySegment, 0, len(segments))
	for _, s := range segments {
		out = append(out, DisplaySegment{
			StartSeconds: s.StartSeconds,
			Label:        s.StartSeconds.Clock(),
			DeepLink:     DeepLink(videoID, s.StartSeconds),
			Text:         s.Text,
		})
	}
	return out
}
