package yt

import (
	"net/url"
	"regexp"
	"strings"
)

var ytRegex = regexp.MustCompile(`(?i)https?://(www\.|m\.)?(youtube\.com/(watch\?|shorts/|embed/)|youtu\.be/)`)

// videoIDRe : un identifiant YouTube fait 11 caractères [A-Za-z0-9_-].
var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

func IsYouTubeURL(s string) bool {
	return ytRegex.MatchString(strings.TrimSpace(s))
}

// VideoID extrait l'identifiant de la vidéo depuis une URL YouTube
// (watch?v=, youtu.be/, shorts/, embed/) ou accepte un identifiant nu.
// Retourne false si rien d'exploitable.
func VideoID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if videoIDRe.MatchString(s) {
		return s, true
	}
	if !IsYouTubeURL(s) {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}

	var id string
	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")
	switch {
	case host == "youtu.be":
		id = path
	case path == "watch":
		id = u.Query().Get("v")
	case strings.HasPrefix(path, "shorts/"):
		id = strings.TrimPrefix(path, "shorts/")
	case strings.HasPrefix(path, "embed/"):
		id = strings.TrimPrefix(path, "embed/")
	}
	// youtu.be/<id>/quelquechose : on ne garde que le premier segment
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	if !videoIDRe.MatchString(id) {
		return "", false
	}
	return id, true
}
