package tanaclip

// ExtractResult holds the article region found by a content engine.
type ExtractResult struct {
	// Title is the page title as seen by the engine.
	Title string

	// Byline is the author line detected by the engine, if any.
	Byline string

	// ContentHTML is the main content as clean HTML with boilerplate removed.
	ContentHTML string
}

// ContentExtractor locates the main article region of an HTML page.
// Implementations wrap different heuristics (scoring, readability,
// trafilatura); all of them return the region as clean HTML.
type ContentExtractor interface {
	// Extract processes raw HTML and returns the main content.
	// An empty ContentHTML means no region could be identified.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., a clip's region) into Markdown.
	Convert(html string) (string, error)
}
