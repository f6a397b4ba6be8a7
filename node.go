package tanaclip

import "encoding/json"

// NodeType distinguishes field nodes from plain nodes.
type NodeType string

// NodeTypeField marks a node as a labeled field slot.
const NodeTypeField NodeType = "field"

// DataType describes how a value node's name is interpreted.
type DataType string

// DataType constants.
const (
	DataTypeURL  DataType = "url"
	DataTypeDate DataType = "date"
)

// SelectionPrefix prefixes the root name of clips taken from a selection.
const SelectionPrefix = "Selection from: "

// Node is one unit of the destination payload. A clip is a root node whose
// children are field nodes (holding value nodes) followed by one content
// node per chunk. Nodes are built once and never mutated afterwards.
type Node struct {
	// Name is the node's text. For field nodes it is the field label.
	Name string

	// Description is secondary text. For URL values it holds the link label.
	Description string

	// Type is NodeTypeField for field nodes and empty otherwise.
	Type NodeType

	// AttributeID is the destination field a field node fills.
	AttributeID string

	// DataType marks URL and date values.
	DataType DataType

	// Tags are the tags applied to the node. A value node with tags is a
	// tagged entity whose identity the destination resolves.
	Tags []string

	// Children are the node's ordered child nodes.
	Children []*Node
}

// IsField reports whether n is a field node.
func (n *Node) IsField() bool {
	return n.Type == NodeTypeField
}

// IsEntity reports whether n is a tagged entity value.
func (n *Node) IsEntity() bool {
	return n.Type != NodeTypeField && len(n.Tags) > 0
}

// Field returns the child field node filling the given destination key,
// or nil if there is none.
func (n *Node) Field(key string) *Node {
	for _, c := range n.Children {
		if c.IsField() && c.AttributeID == key {
			return c
		}
	}
	return nil
}

// Content returns the non-field children of n.
func (n *Node) Content() []*Node {
	var nodes []*Node
	for _, c := range n.Children {
		if !c.IsField() {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// apiNode is the Tana Input API representation of a node.
type apiNode struct {
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Type        NodeType      `json:"type,omitempty"`
	AttributeID string        `json:"attributeId,omitempty"`
	DataType    DataType      `json:"dataType,omitempty"`
	Supertags   []apiSupertag `json:"supertags,omitempty"`
	Children    []*Node       `json:"children,omitempty"`
}

type apiSupertag struct {
	ID string `json:"id"`
}

// MarshalJSON encodes the node in the Tana Input API node shape.
// Tags are emitted as supertag IDs.
func (n Node) MarshalJSON() ([]byte, error) {
	out := apiNode{
		Description: n.Description,
		Type:        n.Type,
		AttributeID: n.AttributeID,
		DataType:    n.DataType,
		Children:    n.Children,
	}
	if n.Type != NodeTypeField {
		out.Name = n.Name
	}
	for _, tag := range n.Tags {
		out.Supertags = append(out.Supertags, apiSupertag{ID: tag})
	}
	return json.Marshal(out)
}

// APIPayload is the request body accepted by the Tana Input API.
type APIPayload struct {
	TargetNodeID string  `json:"targetNodeId,omitempty"`
	Nodes        []*Node `json:"nodes"`
}

// FormatInput carries everything the formatter combines into a node tree.
type FormatInput struct {
	Title          string
	Blocks         []string
	Metadata       PageMetadata
	Tag            string
	Fields         FieldMappings
	IsSelection    bool
	MaxChunkLength int
}

// Format builds the destination node tree for a clip.
//
// Fields are emitted in FieldOrder for every mapping whose metadata value is
// present. Author and publication values become tagged entities when their
// mapping enables reference mode with a tag; dates become calendar-date
// tokens and are omitted when unparsable; URLs become links labeled with the
// title. Each content block is chunked to MaxChunkLength and every chunk
// becomes one content node.
func Format(in FormatInput) *Node {
	name := Sanitize(in.Title)
	if name == "" {
		name = Sanitize(in.Metadata.URL)
	}
	if in.IsSelection {
		name = SelectionPrefix + name
	}

	root := &Node{Name: name}
	if tag := Sanitize(in.Tag); tag != "" {
		root.Tags = []string{tag}
	}

	for _, field := range FieldOrder {
		mapping, ok := in.Fields[field]
		if !ok || mapping.DestinationKey == "" {
			continue
		}
		values := fieldValues(field, mapping, in)
		if len(values) == 0 {
			continue
		}
		root.Children = append(root.Children, &Node{
			Name:        mapping.DestinationKey,
			Type:        NodeTypeField,
			AttributeID: mapping.DestinationKey,
			Children:    values,
		})
	}

	maxLength := in.MaxChunkLength
	if maxLength <= 0 {
		maxLength = DefaultMaxChunkLength
	}
	for _, block := range in.Blocks {
		for _, chunk := range ChunkText(block, maxLength) {
			if text := Sanitize(chunk); text != "" {
				root.Children = append(root.Children, &Node{Name: text})
			}
		}
	}

	return root
}

// FormatClip builds the node tree for a clip using cfg.
func FormatClip(clip *Clip, cfg *Config) *Node {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return Format(FormatInput{
		Title:          clip.Title,
		Blocks:         clip.Blocks,
		Metadata:       clip.Metadata,
		Tag:            cfg.Tag,
		Fields:         cfg.Fields,
		IsSelection:    clip.IsSelection,
		MaxChunkLength: cfg.ChunkLength(),
	})
}

// fieldValues returns the value nodes for one mapped field.
func fieldValues(field FieldName, mapping FieldMapping, in FormatInput) []*Node {
	raw := in.Metadata.Value(field)
	value := Sanitize(raw)
	if value == "" {
		return nil
	}

	switch field {
	case FieldDate:
		token, ok := DateToken(value)
		if !ok {
			return nil
		}
		return []*Node{{Name: token, DataType: DataTypeDate}}

	case FieldURL:
		label := Sanitize(in.Title)
		if label == "" {
			label = value
		}
		return []*Node{{Name: value, Description: label, DataType: DataTypeURL}}
	}

	var tags []string
	if field.SupportsReference() && mapping.UsesReference() {
		tags = []string{Sanitize(mapping.ReferenceTagName)}
	}

	if field != FieldAuthor {
		return []*Node{{Name: value, Tags: tags}}
	}

	// Authors are split in both modes; only reference mode tags them.
	names := ParseAuthors(value)
	if len(names) == 0 {
		names = []string{value}
	}
	nodes := make([]*Node, 0, len(names))
	for _, n := range names {
		nodes = append(nodes, &Node{Name: n, Tags: tags})
	}
	return nodes
}
