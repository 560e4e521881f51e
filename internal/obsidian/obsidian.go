package obsidian

import (
	"fmt"
	"time"

	"github.com/patrickprogramme/ytranscript/internal/fsutil"
	"github.com/patrickprogramme/ytranscript/internal/subtitles"
	"github.com/patrickprogramme/ytranscript/internal/yt"
	"github.com/patrickprogramme/ytranscript/pkg/model"
)

var baseTags = []string{"youtube", "transcript"}

// NoteData contient les données "brutes" pour la note.
type NoteData struct {
	URL         string
	VideoID     string
	Title       string
	Language    string
	TrackName   string
	Automatic   bool
	DateStr     string // formaté YYYY-MM-DD
	Tags        []string
	OtherTracks []string
	Segments    []subtitles.DisplaySegment
}

// NewNoteData construit NoteData à partir d'un transcript.
// others : pistes non retenues, affichées pour information.
func NewNoteData(tr subtitles.Transcript, others model.Tracks, now time.Time) NoteData {
	name := fsutil.CapitalizeFirst(tr.Track.DisplayName)
	if name == "" {
		name = tr.Track.Slug()
	}

	tags := append([]string(nil), baseTags...)
	if tr.Track.LanguageCode != "" {
		tags = append(tags, "lang/"+tr.Track.LanguageCode)
	}

	var otherNames []string
	for _, o := range others {
		if o.SourceLink == tr.Track.SourceLink {
			continue
		}
		otherNames = append(otherNames, o.DisplayName)
	}

	return NoteData{
		URL:         yt.WatchURL(tr.VideoID),
		VideoID:     tr.VideoID,
		Title:       fmt.Sprintf("Transcript %s (%s)", tr.VideoID, name),
		Language:    tr.Track.LanguageCode,
		TrackName:   tr.Track.DisplayName,
		Automatic:   tr.Track.IsAutomatic(),
		DateStr:     now.Format("2006-01-02"),
		Tags:        tags,
		OtherTracks: otherNames,
		Segments:    tr.Segments,
	}
}
