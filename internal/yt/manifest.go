package yt

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/patrickprogramme/ytranscript/pkg/model"
)

const (
	// captionsKey : clé connue qui précède le manifeste dans la page.
	captionsKey = `"captions":`
	// videoDetailsKey : clé qui suit le manifeste ; sert de borne de fin.
	videoDetailsKey = `,"videoDetails`

	youtubeOrigin = "https://www.youtube.com"
)

// extractManifest isole le JSON du manifeste de sous-titres dans la page.
// Ce n'est pas un parsing complet de la page : on prend le texte entre
// captionsKey et la clé suivante connue (videoDetailsKey, ou une seconde
// occurrence de captionsKey), puis on retire le premier saut de ligne.
// Retourne model.ErrNoCaptions si la clé est absente.
func extractManifest(page string) (string, error) {
	i := strings.Index(page, captionsKey)
	if i < 0 {
		return "", model.ErrNoCaptions
	}
	rest := page[i+len(captionsKey):]

	// borne de fin : la première des deux clés rencontrée
	end := len(rest)
	if j := strings.Index(rest, videoDetailsKey); j >= 0 && j < end {
		end = j
	}
	if j := strings.Index(rest, captionsKey); j >= 0 && j < end {
		end = j
	}
	rest = rest[:end]

	return strings.Replace(rest, "\n", "", 1), nil
}

// parseTracks décode le manifeste et retourne les pistes dans l'ordre du document.
// - clés attendues absentes, JSON invalide, piste sans URL : model.ErrParse
// - liste de pistes vide : model.ErrNoTracks
func parseTracks(manifest string) (model.Tracks, error) {
	var m captionsManifest
	if err := json.Unmarshal([]byte(manifest), &m); err != nil {
		return nil, fmt.Errorf("%w: caption manifest: %w", model.ErrParse, err)
	}
	if m.Renderer == nil {
		return nil, fmt.Errorf("%w: caption manifest: missing playerCaptionsTracklistRenderer", model.ErrParse)
	}
	if m.Renderer.CaptionTracks == nil {
		return nil, fmt.Errorf("%w: caption manifest: missing captionTracks", model.ErrParse)
	}
	raw := *m.Renderer.CaptionTracks
	if len(raw) == 0 {
		return nil, model.ErrNoTracks
	}

	out := make(model.Tracks, 0, len(raw))
	for i, rt := range raw {
		link, err := absoluteLink(rt.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: caption track %d: %w", model.ErrParse, i, err)
		}
		name := strings.TrimSpace(rt.Name.Text())
		if name == "" {
			// pas de nom affiché : le code langue fait l'affaire
			name = rt.LanguageCode
		}
		out = append(out, model.CaptionTrack{
			DisplayName:  name,
			SourceLink:   link,
			LanguageCode: rt.LanguageCode,
			Kind:         rt.Kind,
		})
	}
	return out, nil
}

// absoluteLink valide baseUrl ; les liens relatifs ("/api/timedtext?...")
// sont résolus contre https://www.youtube.com.
func absoluteLink(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("missing baseUrl")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid baseUrl %q: %w", raw, err)
	}
	if u.IsAbs() {
		if u.Host == "" {
			return "", fmt.Errorf("invalid baseUrl %q: no host", raw)
		}
		return u.String(), nil
	}
	base, _ := url.Parse(youtubeOrigin)
	return base.ResolveReference(u).String(), nil
}
