package tanaclip

// FieldName identifies a logical metadata field that can be mapped to a
// destination field.
type FieldName string

// FieldName constants, listed in output order.
const (
	FieldAuthor      FieldName = "author"
	FieldURL         FieldName = "url"
	FieldDate        FieldName = "date"
	FieldPublication FieldName = "publication"
	FieldDescription FieldName = "description"
)

// FieldOrder is the order in which mapped fields are emitted.
var FieldOrder = []FieldName{
	FieldAuthor,
	FieldURL,
	FieldDate,
	FieldPublication,
	FieldDescription,
}

// SupportsReference reports whether values of the field may be emitted as
// tagged entities.
func (f FieldName) SupportsReference() bool {
	return f == FieldAuthor || f == FieldPublication
}

// FieldMapping maps one logical field onto a destination field.
type FieldMapping struct {
	// DestinationKey is the destination attribute ID or field name.
	DestinationKey string `json:"destinationKey" yaml:"destinationKey"`

	// ReferenceMode emits values as tagged entities instead of plain text.
	// Only honored for fields that support references.
	ReferenceMode bool `json:"referenceMode,omitempty" yaml:"referenceMode,omitempty"`

	// ReferenceTagName is the tag applied to entities in reference mode.
	ReferenceTagName string `json:"referenceTagName,omitempty" yaml:"referenceTagName,omitempty"`
}

// UsesReference reports whether values should be emitted as tagged entities.
func (m FieldMapping) UsesReference() bool {
	return m.ReferenceMode && m.ReferenceTagName != ""
}

// FieldMappings maps logical fields to destination fields. Fields without
// an entry are not emitted.
type FieldMappings map[FieldName]FieldMapping

// Config is the clipping configuration supplied by the settings collaborator.
// It is read-only to the extraction and formatting pipeline.
type Config struct {
	// Tag is the tag annotation attached to every clip's root node.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`

	// Fields maps metadata onto destination fields.
	Fields FieldMappings `json:"fields,omitempty" yaml:"fields,omitempty"`

	// TargetNodeID is the destination node API payloads are addressed to.
	TargetNodeID string `json:"targetNodeId,omitempty" yaml:"targetNodeId,omitempty"`

	// MaxChunkLength bounds the length of a single content value.
	// Zero means DefaultMaxChunkLength.
	MaxChunkLength int `json:"maxChunkLength,omitempty" yaml:"maxChunkLength,omitempty"`
}

// DefaultConfig returns a configuration mapping every field to a field of
// the same name, with references disabled.
func DefaultConfig() *Config {
	return &Config{
		Fields: FieldMappings{
			FieldAuthor:      {DestinationKey: "Author"},
			FieldURL:         {DestinationKey: "URL"},
			FieldDate:        {DestinationKey: "Date"},
			FieldPublication: {DestinationKey: "Publication"},
		},
		MaxChunkLength: DefaultMaxChunkLength,
	}
}

// ChunkLength returns the effective maximum chunk length.
func (c *Config) ChunkLength() int {
	if c == nil || c.MaxChunkLength <= 0 {
		return DefaultMaxChunkLength
	}
	return c.MaxChunkLength
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.MaxChunkLength < 0 {
		return Errorf(EINVALID, "max chunk length must not be negative")
	}
	for name, m := range c.Fields {
		if !isKnownField(name) {
			return Errorf(EINVALID, "unknown field %q", name)
		}
		if m.DestinationKey == "" {
			return Errorf(EINVALID, "field %q: destination key required", name)
		}
		if m.ReferenceMode && !name.SupportsReference() {
			return Errorf(EINVALID, "field %q does not support reference mode", name)
		}
	}
	return nil
}

func isKnownField(name FieldName) bool {
	for _, f := range FieldOrder {
		if f == name {
			return true
		}
	}
	return false
}
