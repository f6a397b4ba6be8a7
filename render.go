package tanaclip

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatPaste    = "paste"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats lists the supported export formats.
var Formats = []string{FormatPaste, FormatJSON, FormatMarkdown}

// Renderer renders clips into export payloads.
type Renderer struct {
	Config *Config

	// Markdown converts region HTML for the markdown format. When nil, or
	// when a clip has no region HTML, the blocks are used as paragraphs.
	Markdown Converter
}

// Render renders clip in the given format. An empty format means paste.
func (r *Renderer) Render(clip *Clip, format string) (string, error) {
	switch format {
	case "", FormatPaste:
		return RenderPaste(FormatClip(clip, r.Config)), nil
	case FormatJSON:
		payload := APIPayload{Nodes: []*Node{FormatClip(clip, r.Config)}}
		if r.Config != nil {
			payload.TargetNodeID = r.Config.TargetNodeID
		}
		b, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", Errorf(EINTERNAL, "encoding payload: %v", err)
		}
		return string(b) + "\n", nil
	case FormatMarkdown:
		return r.renderMarkdown(clip)
	}
	return "", Errorf(EINVALID, "unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// frontMatter is the YAML header of a markdown export.
type frontMatter struct {
	Title       string   `yaml:"title,omitempty"`
	Author      string   `yaml:"author,omitempty"`
	Publication string   `yaml:"publication,omitempty"`
	Date        string   `yaml:"date,omitempty"`
	URL         string   `yaml:"url,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

func (r *Renderer) renderMarkdown(clip *Clip) (string, error) {
	fm := frontMatter{
		Title:       Sanitize(clip.Title),
		Author:      Sanitize(clip.Metadata.Author),
		Publication: Sanitize(clip.Metadata.Publication),
		URL:         clip.Metadata.URL,
		Description: Sanitize(clip.Metadata.Description),
	}
	if token, ok := DateToken(clip.Metadata.PublishedDate); ok {
		fm.Date = token
	}
	if r.Config != nil && r.Config.Tag != "" {
		fm.Tags = []string{r.Config.Tag}
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", Errorf(EINTERNAL, "encoding front matter: %v", err)
	}

	body := clip.Content()
	if r.Markdown != nil && strings.TrimSpace(clip.ContentHTML) != "" {
		md, err := r.Markdown.Convert(clip.ContentHTML)
		if err != nil {
			return "", err
		}
		body = strings.TrimSpace(md)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String(), nil
}
