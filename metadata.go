package tanaclip

// PageMetadata describes the page a clip was taken from. Every field except
// URL is optional and resolved independently; an empty string means the
// value could not be found.
type PageMetadata struct {
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	Publication   string `json:"publication,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	URL           string `json:"url"`
	Description   string `json:"description,omitempty"`
}

// Value returns the metadata value feeding the given output field.
func (m PageMetadata) Value(field FieldName) string {
	switch field {
	case FieldAuthor:
		return m.Author
	case FieldURL:
		return m.URL
	case FieldDate:
		return m.PublishedDate
	case FieldPublication:
		return m.Publication
	case FieldDescription:
		return m.Description
	}
	return ""
}
