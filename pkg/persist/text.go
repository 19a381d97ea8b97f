package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/hierpart/pkg/hierpart"
)

// Sentinel errors for the text format.
var (
	// ErrElementQuote indicates an element contains a double quote, which the
	// text format cannot represent.
	ErrElementQuote = errors.New(`element contains a double quote`)
	// ErrMalformedLine indicates a line that is not a path/elements pair.
	ErrMalformedLine = errors.New("malformed partition line")
)

// TextCodec reads and writes the path-indexed leaf format: one line per leaf,
// holding a comma-separated path of sibling-rank integers (empty for a root
// leaf), a single space, and the leaf's elements as double-quoted
// comma-separated tokens. Lines containing '#' are treated as comments on
// load, so elements must contain neither '"' nor '#'.
type TextCodec struct{}

// NewTextCodec creates a text codec.
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Extension implements Codec.Extension for the text format.
func (c *TextCodec) Extension() string {
	return treeExtension
}

// Encode writes one line per leaf. Leaves are enumerated in the tree's DFS
// order; sibling ranks are derived from per-depth visit counters, so the path
// of a leaf is the sequence of ranks its ancestors received during the walk.
func (c *TextCodec) Encode(w io.Writer, p *hierpart.Partition[string]) error {
	bw := bufio.NewWriter(w)
	countAtDepth := make(map[int]int)

	for node := range p.DFS() {
		depth, _ := p.Depth(node)
		countAtDepth[depth]++

		leaf, _ := p.Leaf(node)
		if !leaf {
			continue
		}

		segments := make([]string, depth)
		for d := range depth {
			segments[d] = strconv.Itoa(countAtDepth[d+1] - 1)
		}

		elems, _ := p.Elements(node)

		quoted := make([]string, len(elems))

		for i, e := range elems {
			if strings.Contains(e, `"`) {
				return fmt.Errorf("%w: %q", ErrElementQuote, e)
			}

			quoted[i] = `"` + e + `"`
		}

		_, err := fmt.Fprintf(bw, "%s %s\n", strings.Join(segments, ","), strings.Join(quoted, ","))
		if err != nil {
			return fmt.Errorf("write leaf line: %w", err)
		}
	}

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("flush leaf lines: %w", err)
	}

	return nil
}

// trieNode accumulates elements along shared path prefixes during decoding.
// Child keys are remembered in discovery order so sibling ranks in the rebuilt
// tree are deterministic.
type trieNode struct {
	elements []string
	order    []string
	children map[string]*trieNode
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

func (t *trieNode) child(key string) *trieNode {
	node, ok := t.children[key]
	if !ok {
		node = newTrieNode()
		t.children[key] = node
		t.order = append(t.order, key)
	}

	return node
}

// Decode reconstructs a tree from the leaf format. Internal nodes are rebuilt
// implicitly from shared path prefixes; when an element appears on several
// lines, the last path wins. The resulting tree is built with validation
// enabled.
func (c *TextCodec) Decode(r io.Reader) (*hierpart.Partition[string], error) {
	pathOf := make(map[string][]string)

	var order []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.Contains(line, "#") {
			continue
		}

		pathField, elemsField, found := strings.Cut(line, " ")
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}

		var segments []string
		if pathField != "" {
			segments = strings.Split(pathField, ",")
		}

		for _, token := range strings.Split(elemsField, `","`) {
			element := strings.ReplaceAll(token, `"`, "")

			if _, seen := pathOf[element]; !seen {
				order = append(order, element)
			}

			pathOf[element] = segments
		}
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("read partition lines: %w", err)
	}

	root := newTrieNode()

	for _, element := range order {
		node := root
		node.elements = append(node.elements, element)

		for _, segment := range pathOf[element] {
			node = node.child(segment)
			node.elements = append(node.elements, element)
		}
	}

	p := hierpart.New(root.elements)

	type frame struct {
		trie *trieNode
		id   int
	}

	stack := []frame{{trie: root, id: p.Root()}}

	for len(stack) > 0 {
		parent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, key := range parent.trie.order {
			child := parent.trie.children[key]

			id, addErr := p.AddChild(parent.id, child.elements)
			if addErr != nil {
				return nil, fmt.Errorf("rebuild node: %w", addErr)
			}

			stack = append(stack, frame{trie: child, id: id})
		}
	}

	return p, nil
}
