package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/patrickprogramme/ytranscript/internal/clipboard"
	"github.com/patrickprogramme/ytranscript/internal/yt"
)

// ErrNoInput : l'entrée standard est fermée avant qu'une URL valide soit saisie.
var ErrNoInput = errors.New("aucune URL saisie")

type terminalUI struct {
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
	clip   clipboard.Clipboard

	once  sync.Once
	input chan string
}

func NewTerminal() Interface {
	return newTerminal(os.Stdin, os.Stdout, os.Stderr, clipboard.System{})
}

func newTerminal(in io.Reader, out, errOut io.Writer, clip clipboard.Clipboard) *terminalUI {
	return &terminalUI{reader: bufio.NewReader(in), out: out, errOut: errOut, clip: clip}
}

func (t *terminalUI) GetYtURL(ctx context.Context) (string, error) {
	// 1) clipboard
	if t.clip != nil {
		if clip, err := t.clip.ReadAll(); err == nil {
			clip = strings.TrimSpace(clip)
			if yt.IsYouTubeURL(clip) {
				t.PrintInfo(ctx, fmt.Sprintf("Utilisation de l'URL depuis le presse-papier: %s", clip))
				return clip, nil
			}
		}
	}
	// 2) prompt
	lines := t.lines()
	for {
		fmt.Fprint(t.out, "Entrez l'URL d'une vidéo Youtube: ")
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return "", ErrNoInput
			}
			url := strings.TrimSpace(line)
			if yt.IsYouTubeURL(url) {
				return url, nil
			}
			fmt.Fprintln(t.out, "❌ URL invalide. Essayez à nouveau.")
		}
	}
}

// lines lit l'entrée ligne par ligne dans une seule goroutine, partagée par
// tous les prompts, pour qu'ils restent annulables par ctx.
// Le canal est fermé en fin d'entrée.
func (t *terminalUI) lines() <-chan string {
	t.once.Do(func() {
		t.input = make(chan string)
		go func() {
			defer close(t.input)
			for {
				line, err := t.reader.ReadString('\n')
				if line != "" {
					t.input <- line
				}
				if err != nil {
					return
				}
			}
		}()
	})
	return t.input
}

func (t *terminalUI) WaitForExit(ctx context.Context) error {
	fmt.Fprintln(t.out, "\nAppuyez sur Entrée ou Ctrl+C pour quitter.")

	select {
	case <-ctx.Done(): // Ctrl+C (signal.NotifyContext dans main) ou annulation ailleurs
	case <-t.lines(): // Entrée, ou fin de l'entrée standard
	}
	return nil
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}
