package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/terraincognita07/samaan/internal/services"
)

const summaryWordWrap = 80

type DigestBuilder interface {
	BuildDigest(reference time.Time, previous bool) (services.PeriodDigest, error)
}

// PrintSummary renders the period containing reference, or the one before it,
// as terminal markdown. plain writes the markdown source unchanged.
func PrintSummary(digests DigestBuilder, reference time.Time, previous bool, plain bool, out io.Writer) error {
	digest, err := digests.BuildDigest(reference, previous)
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}

	if plain {
		_, err = io.WriteString(out, digest.Markdown)
		return err
	}

	rendered, err := renderMarkdown(digest.Markdown)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func renderMarkdown(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(summaryWordWrap))
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}
