package main

import (
	"context"
	"fmt"
	"html"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"surveyor/internal/api"
	"surveyor/internal/render"
)

var (
	askLocal    bool
	askProvider string
	askFormat   string
	askOutput   string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Submit a single question to the generation endpoint",
	Long: `Submits a question and prints the result.

Formats:
  markdown  rendered for the terminal (default)
  text      the raw markdown source
  html      the sanitized HTML the web client would display

Example:
  surveyor ask "AI in Agriculture"
  surveyor ask --format html --output survey.html "federated learning"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askLocal, "local", false, "Use the backend's local model")
	askCmd.Flags().StringVar(&askProvider, "provider", "", "Generation provider (gemini or mistral; default from config)")
	askCmd.Flags().StringVar(&askFormat, "format", "markdown", "Output format: markdown, text, or html")
	askCmd.Flags().StringVar(&askOutput, "output", "", "Write output to a file instead of stdout")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	localLLM := askLocal || cfg.Backend.LocalLLM
	provider := askProvider
	if provider == "" {
		provider = cfg.Backend.Provider
	}

	// No timeout: generation legitimately takes minutes. Ctrl+C cancels.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	d, cleanup := newDispatcher()
	defer cleanup()

	resp, err := d.Run(ctx, question, localLLM, provider)
	if err != nil {
		return err
	}

	out, err := formatResponse(resp, askFormat)
	if err != nil {
		return err
	}

	if askOutput != "" {
		if err := os.WriteFile(askOutput, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("wrote survey", zap.String("path", askOutput))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// formatResponse turns a generation response into the requested output.
func formatResponse(resp *api.GenerateResponse, format string) (string, error) {
	md := responseMarkdown(resp)

	switch format {
	case "text":
		return md, nil
	case "markdown":
		renderer, err := render.NewTermRenderer(100)
		if err != nil {
			// Fall back to the source text rather than failing the query.
			return md, nil
		}
		return render.RenderTerminal(renderer, md), nil
	case "html":
		return htmlPage(resp, render.RenderHTML(md)), nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: markdown, text, html)", format)
	}
}

// responseMarkdown builds the markdown source for either response shape.
// Legacy content gets its LaTeX delimiters normalized here so every output
// format sees the dollar forms.
func responseMarkdown(resp *api.GenerateResponse) string {
	var sb strings.Builder

	if resp.OriginalQuestion != "" {
		sb.WriteString(fmt.Sprintf("**Question:** %s\n\n", resp.OriginalQuestion))
	}
	if resp.ProviderUsed != "" {
		sb.WriteString(fmt.Sprintf("*Answered by %s*\n\n", resp.ProviderUsed))
	}

	if resp.IsStructured() {
		sb.WriteString(render.DashboardMarkdown(render.BuildDashboard(resp.StructuredData)))
	} else {
		sb.WriteString(render.NormalizeMathDelimiters(render.FlattenContent(resp)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// htmlPage wraps a sanitized fragment in a standalone document. MathJax
// picks up the math spans client-side, same as the web client.
func htmlPage(resp *api.GenerateResponse, body string) string {
	title := "Literature Survey"
	if resp.IsStructured() && resp.StructuredData.Domain != "" {
		title = resp.StructuredData.Domain
	} else if resp.OriginalQuestion != "" {
		title = resp.OriginalQuestion
	}
	title = html.EscapeString(title)

	return `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>` + title + `</title>
<script src="https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js" async></script>
</head>
<body>
` + body + `
</body>
</html>
`
}
