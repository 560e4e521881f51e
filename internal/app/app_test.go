package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/patrickprogramme/ytranscript/internal/config"
	"github.com/patrickprogramme/ytranscript/internal/fetch"
	"github.com/patrickprogramme/ytranscript/internal/logger"
	"github.com/patrickprogramme/ytranscript/internal/obsidian"
	"github.com/patrickprogramme/ytranscript/pkg/model"
)

const videoID = "abcdefghijk"

const page = `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
{"baseUrl":"https://www.youtube.com/api/timedtext?v=abcdefghijk&lang=es","name":{"simpleText":"Spanish"},"languageCode":"es"},
{"baseUrl":"https://www.youtube.com/api/timedtext?v=abcdefghijk&lang=en","name":{"simpleText":"English"},"languageCode":"en"}
]}},"videoDetails":{"videoId":"abcdefghijk"}};</script></html>`

const timedtext = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0" dur="2">Hello there.</text>` +
	`<text start="2" dur="3">This is great. And more</text>` +
	`<text start="70" dur="2">Done.</text>` +
	`<text start="72" dur="1">Bye.</text>` +
	`</transcript>`

// fakeFetcher sert la page et le timedtext, et compte les appels.
type fakeFetcher struct {
	mu     sync.Mutex
	calls  []string
	page   string
	doc    string
	err    error
	onPage func() // appelé pendant le fetch de la page
}

func (f *fakeFetcher) Fetch(_ context.Context, u string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, u)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if strings.Contains(u, "/watch?v=") {
		if f.onPage != nil {
			f.onPage()
		}
		return f.page, nil
	}
	return f.doc, nil
}

type fakeUI struct {
	url    string
	infos  []string
	errors []string
}

func (u *fakeUI) GetYtURL(context.Context) (string, error) { return u.url, nil }
func (u *fakeUI) WaitForExit(context.Context) error { return nil }
func (u *fakeUI) PrintInfo(_ context.Context, s string) { u.infos = append(u.infos, s) }
func (u *fakeUI) PrintError(_ context.Context, s string) { u.errors = append(u.errors, s) }
func (u *fakeUI) allInfo() string { return strings.Join(u.infos, "\n") }

type memClipboard struct{ text string }

func (m *memClipboard) ReadAll() (string, error) { return m.text, nil }
func (m *memClipboard) WriteAll(s string) error { m.text = s; return nil }

func newTestApp(t *testing.T, f fetch.Fetcher, flags *CLIFlags) (*App, *fakeUI, *memClipboard) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	renderer, err := obsidian.DefaultRenderer(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	u := &fakeUI{url: "https://www.youtube.com/watch?v=" + videoID}
	a := New(cfg, u, flags, renderer, logger.Nop())
	a.fetcher = f
	clip := &memClipboard{}
	a.clip = clip
	a.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return a, u, clip
}

func TestRunWritesPlainTranscript(t *testing.T) {
	f := &fakeFetcher{page: page, doc: timedtext}
	a, u, clip := newTestApp(t, f, &CLIFlags{Clipboard: true})
	a.cfg.SaveRawCaptions = true

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(a.cfg.OutputDir, "abcdefghijk (en).txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "[00:00] Hello there. This is great. And more Done.\n\n[01:12] Bye.\n"
	if string(out) != want {
		t.Fatalf("transcript =\n%q\nwant\n%q", out, want)
	}

	raw, err := os.ReadFile(filepath.Join(a.cfg.OutputDir, "abcdefghijk (en).xml"))
	if err != nil || string(raw) != timedtext {
		t.Fatalf("raw captions not saved: %v", err)
	}
	if clip.text != want {
		t.Fatalf("clipboard = %q", clip.text)
	}
	if !strings.Contains(u.allInfo(), "* English (en)") {
		t.Fatalf("track list not printed:\n%s", u.allInfo())
	}
	if len(f.calls) != 2 || !strings.Contains(f.calls[1], "lang=en") {
		t.Fatalf("calls = %v", f.calls)
	}
}

func TestRunFormats(t *testing.T) {
	tests := []struct {
		format string
		file   string
		check  func(t *testing.T, content string)
	}{
		{"md", "abcdefghijk (en).md", func(t *testing.T, s string) {
			if !strings.Contains(s, "[01:12](https://www.youtube.com/watch?v=abcdefghijk&t=72s) Bye.") {
				t.Errorf("markdown missing deep link:\n%s", s)
			}
			if !strings.Contains(s, "generated: 2024-05-01") || !strings.Contains(s, "- Spanish") {
				t.Errorf("markdown front matter or tracks:\n%s", s)
			}
		}},
		{"JSON", "abcdefghijk (en).json", func(t *testing.T, s string) {
			var v struct {
				Segments []struct {
					StartSeconds int    `json:"start_seconds"`
					Text         string `json:"text"`
				} `json:"segments"`
			}
			if err := json.Unmarshal([]byte(s), &v); err != nil {
				t.Fatal(err)
			}
			if len(v.Segments) != 2 || v.Segments[1].StartSeconds != 72 {
				t.Errorf("segments = %+v", v.Segments)
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			a, _, _ := newTestApp(t, &fakeFetcher{page: page, doc: timedtext}, &CLIFlags{Format: tc.format})
			if err := a.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			b, err := os.ReadFile(filepath.Join(a.cfg.OutputDir, tc.file))
			if err != nil {
				t.Fatal(err)
			}
			tc.check(t, string(b))
		})
	}
}

func TestRunJSONCopiesCollapsedText(t *testing.T) {
	a, _, clip := newTestApp(t, &fakeFetcher{page: page, doc: timedtext}, &CLIFlags{Format: "json", Clipboard: true})
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "Hello there. This is great. And more Done. Bye.\n"
	if clip.text != want {
		t.Fatalf("clipboard = %q; want %q", clip.text, want)
	}
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	out := t.TempDir()
	a, _, _ := newTestApp(t, &fakeFetcher{page: page, doc: timedtext}, &CLIFlags{
		URL:    videoID, // identifiant nu
		Lang:   "Spanish",
		OutDir: out,
	})
	a.cfg.SaveInSubdir = true

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, videoID, "abcdefghijk (es).txt")); err != nil {
		t.Fatalf("expected the Spanish track in a per-video subdirectory: %v", err)
	}
}

func TestRunNoCaptionsIsNotAnError(t *testing.T) {
	for name, p := range map[string]string{
		"no manifest": `<html>{"videoDetails":{}}</html>`,
		"empty list":  `<html>"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[]}},"videoDetails":{}</html>`,
	} {
		t.Run(name, func(t *testing.T) {
			f := &fakeFetcher{page: p}
			a, u, _ := newTestApp(t, f, nil)
			if err := a.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !strings.Contains(u.allInfo(), "Aucun sous-titre") {
				t.Fatalf("infos = %v", u.infos)
			}
			if len(f.calls) != 1 {
				t.Fatalf("cue fetch should not happen: %v", f.calls)
			}
			entries, _ := os.ReadDir(a.cfg.OutputDir)
			if len(entries) != 0 {
				t.Fatalf("no file expected, got %v", entries)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("network", func(t *testing.T) {
		a, _, _ := newTestApp(t, &fakeFetcher{err: errors.Join(model.ErrNetwork, errors.New("boom"))}, nil)
		if err := a.Run(context.Background()); !errors.Is(err, model.ErrNetwork) {
			t.Fatalf("err = %v; want ErrNetwork", err)
		}
	})
	t.Run("bad timedtext", func(t *testing.T) {
		a, _, _ := newTestApp(t, &fakeFetcher{page: page, doc: "<html/>"}, nil)
		if err := a.Run(context.Background()); !errors.Is(err, model.ErrParse) {
			t.Fatalf("err = %v; want ErrParse", err)
		}
	})
	t.Run("invalid url", func(t *testing.T) {
		f := &fakeFetcher{}
		a, _, _ := newTestApp(t, f, &CLIFlags{URL: "https://example.com/watch?v=abcdefghijk"})
		if err := a.Run(context.Background()); !errors.Is(err, ErrInvalidVideo) {
			t.Fatalf("err = %v; want ErrInvalidVideo", err)
		}
		if len(f.calls) != 0 {
			t.Fatalf("no fetch expected: %v", f.calls)
		}
	})
	t.Run("unknown format", func(t *testing.T) {
		a, _, _ := newTestApp(t, &fakeFetcher{}, &CLIFlags{Format: "pdf"})
		if err := a.Run(context.Background()); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestPipelineSkipsCueFetchWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := &fakeFetcher{page: page, doc: timedtext, onPage: cancel}

	_, err := Pipeline{Fetcher: f, Preferred: "English"}.Run(ctx, videoID)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("cue fetch issued after cancellation: %v", f.calls)
	}
}

func TestPipelineLogsRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := Pipeline{
		Fetcher:   &fakeFetcher{page: page, doc: timedtext},
		Preferred: "English",
		Log:       logger.FromZap(zap.New(core)),
	}
	res, err := p.Run(context.Background(), videoID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Fatalf("RunID %q is not a uuid: %v", res.RunID, err)
	}
	built := logs.FilterMessage("transcript built").All()
	if len(built) != 1 {
		t.Fatalf("entries = %v", logs.All())
	}
	ctx := built[0].ContextMap()
	if ctx["run_id"] != res.RunID || ctx["video_id"] != videoID || ctx["segments"] != int64(2) {
		t.Fatalf("context = %v", ctx)
	}
	if res.Transcript.Track.LanguageCode != "en" || len(res.Tracks) != 2 {
		t.Fatalf("result = %+v", res)
	}
}

func TestEncodeTranscriptWithoutRenderer(t *testing.T) {
	res := &Result{}
	if _, err := encodeTranscript(res, model.FormatMARKDOWN, nil, time.Now()); err == nil {
		t.Fatal("md without renderer should fail")
	}
}

func TestSaveRawRejectsEmpty(t *testing.T) {
	if _, err := SaveRaw(nil, (&Result{}).Transcript, t.TempDir()); err == nil {
		t.Fatal("expected an error")
	}
}
