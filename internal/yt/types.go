package yt

// captionsManifest représente l'objet JSON situé après la clé "captions"
// dans la page de la vidéo. On ne mappe que ce qui sert.
type captionsManifest struct {
	Renderer *trackListRenderer `json:"playerCaptionsTracklistRenderer"`
}

type trackListRenderer struct {
	CaptionTracks *[]rawCaptionTrack `json:"captionTracks"`
	// On ignore volontairement audioTracks, translationLanguages, etc.
}

type rawCaptionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	Name         trackName `json:"name"`
	VssID        string    `json:"vssId,omitempty"`
	LanguageCode string    `json:"languageCode,omitempty"`
	Kind         string    `json:"kind,omitempty"` // "asr" = automatique
}

// trackName : YouTube fournit soit simpleText, soit une liste de runs.
type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

// Text retourne simpleText, ou la concaténation des runs si simpleText est absent.
func (n trackName) Text() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}
	var s string
	for _, r := range n.Runs {
		s += r.Text
	}
	return s
}
