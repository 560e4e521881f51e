package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/patrickprogramme/ytranscript/pkg/model"
)

func TestClientFetchOK(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte("<transcript></transcript>"))
	}))
	defer srv.Close()

	c := NewClient(time.Second, 0, "test-agent")
	body, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if body != "<transcript></transcript>" {
		t.Fatalf("body = %q", body)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q; want test-agent", gotUA)
	}
	if gotLang == "" {
		t.Errorf("Accept-Language header missing")
	}
}

func TestClientFetchErrorsAreNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		client *Client
		url    string
	}{
		{"http status", NewClient(time.Second, 0, ""), srv.URL + "/missing"},
		{"too large", NewClient(time.Second, 16, ""), srv.URL + "/big"},
		{"timeout", NewClient(50*time.Millisecond, 0, ""), srv.URL + "/slow"},
		{"invalid url", NewClient(time.Second, 0, ""), "not a url"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.client.Fetch(context.Background(), tc.url)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, model.ErrNetwork) {
				t.Fatalf("error %v does not wrap ErrNetwork", err)
			}
		})
	}
}

func TestClientFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(time.Second, 0, "").Fetch(ctx, srv.URL)
	if !errors.Is(err, model.ErrNetwork) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want ErrNetwork wrapping context.Canceled", err)
	}
}

func TestFetcherFunc(t *testing.T) {
	var f Fetcher = FetcherFunc(func(ctx context.Context, u string) (string, error) {
		return "echo:" + u, nil
	})
	got, _ := f.Fetch(context.Background(), "x")
	if got != "echo:x" {
		t.Fatalf("got %q", got)
	}
}
