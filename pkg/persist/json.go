package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/hierpart/pkg/hierpart"
)

// Default indentation for pretty-printed JSON.
const defaultIndent = "  "

// ErrSchemaViolation indicates a JSON document that does not match the
// partition schema.
var ErrSchemaViolation = errors.New("partition document does not match schema")

// partitionSchema validates the nested node document: every node carries an
// elements array and an optional children array of nodes.
const partitionSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"elements": {"type": "array", "items": {"type": "string"}},
		"children": {"type": "array", "items": {"$ref": "#"}}
	},
	"required": ["elements"],
	"additionalProperties": false
}`

// jsonNode is the recursive document form of a partition node.
type jsonNode struct {
	Elements []string   `json:"elements"`
	Children []jsonNode `json:"children,omitempty"`
}

// JSONCodec reads and writes partitions as nested JSON node documents,
// validating incoming documents against an embedded JSON Schema.
type JSONCodec struct {
	// Indent specifies the indentation string. Empty string means compact JSON.
	Indent string
}

// NewJSONCodec creates a JSON codec with pretty-printing (2-space indent).
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: defaultIndent}
}

// Extension implements Codec.Extension for JSON files.
func (c *JSONCodec) Extension() string {
	return jsonExtension
}

// Encode writes the tree as a nested node document.
func (c *JSONCodec) Encode(w io.Writer, p *hierpart.Partition[string]) error {
	encoder := json.NewEncoder(w)
	if c.Indent != "" {
		encoder.SetIndent("", c.Indent)
	}

	err := encoder.Encode(c.buildNode(p, p.Root()))
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

func (c *JSONCodec) buildNode(p *hierpart.Partition[string], node int) jsonNode {
	elems, _ := p.Elements(node)

	out := jsonNode{Elements: elems}

	kids, _ := p.Children(node)
	for child := range kids {
		out.Children = append(out.Children, c.buildNode(p, child))
	}

	return out
}

// Decode validates the document against the partition schema and rebuilds the
// tree. The resulting tree is built with validation enabled, so documents
// violating the subset invariant are rejected.
func (c *JSONCodec) Decode(r io.Reader) (*hierpart.Partition[string], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read partition document: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(partitionSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate partition document: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(details, "; "))
	}

	var root jsonNode

	err = json.Unmarshal(data, &root)
	if err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}

	p := hierpart.New(root.Elements)

	type frame struct {
		doc *jsonNode
		id  int
	}

	stack := []frame{{doc: &root, id: p.Root()}}

	for len(stack) > 0 {
		parent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := range parent.doc.Children {
			child := &parent.doc.Children[i]

			id, addErr := p.AddChild(parent.id, child.Elements)
			if addErr != nil {
				return nil, fmt.Errorf("rebuild node: %w", addErr)
			}

			stack = append(stack, frame{doc: child, id: id})
		}
	}

	return p, nil
}
