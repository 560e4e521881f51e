// Package fetch fournit l'accès réseau du pipeline : une seule capacité,
// récupérer le texte d'une URL. Fetcher est l'abstraction utilisée par les
// étapes (catalogue de pistes, récupération des cues) ; Client en est
// l'implémentation HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickprogramme/ytranscript/pkg/model"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10_000_000
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) ytranscript/1.0"
)

// Fetcher récupère un document texte par URL.
// Les erreurs de transport enveloppent model.ErrNetwork.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// FetcherFunc adapte une fonction en Fetcher (pratique pour les tests).
type FetcherFunc func(ctx context.Context, rawURL string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) (string, error) {
	return f(ctx, rawURL)
}

// Client est un Fetcher HTTP avec limite de taille et timeout par requête.
type Client struct {
	HTTP      *http.Client
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
	// AcceptLanguage est envoyé tel quel ; la page YouTube localise les noms
	// de pistes selon cet en-tête.
	AcceptLanguage string
}

// NewClient construit un Client ; les valeurs <= 0 ou vides prennent les défauts.
func NewClient(timeout time.Duration, maxBytes int64, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		HTTP:           &http.Client{},
		Timeout:        timeout,
		MaxBytes:       maxBytes,
		UserAgent:      userAgent,
		AcceptLanguage: "en-US,en;q=0.9",
	}
}

// Fetch implémente Fetcher.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	data, err := c.FetchBytes(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FetchBytes télécharge l'URL et retourne les octets.
// - ctx peut être nil.
// Note : cette fonction lit tout en mémoire (OK pour une page ou un timedtext).
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxBytes := c.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	// valider l'URL tôt
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("%w: fetch: invalid url %q: %w", model.ErrNetwork, rawURL, err)
	}

	// timeout via context
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: new request: %w", model.ErrNetwork, err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	if c.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", c.AcceptLanguage)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: request failed: %w", model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: fetch: unexpected http status %s", model.ErrNetwork, resp.Status)
	}

	// si Content-Length connu et supérieur à maxBytes -> échouer vite
	if resp.ContentLength > 0 && resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("%w: fetch: content-length %d exceeds limit %d", model.ErrNetwork, resp.ContentLength, maxBytes)
	}

	r := io.LimitReader(resp.Body, maxBytes+1) // +1 pour détecter dépassement
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: read body: %w", model.ErrNetwork, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: fetch: body too large (>%d bytes)", model.ErrNetwork, maxBytes)
	}
	return data, nil
}
