package yaml

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// IncludeTag marks a scalar naming a document to include in place.
const IncludeTag = "!include"

// ErrNotMapping is returned when a document root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// ErrUnknownAlias is returned when an alias refers to an undefined anchor.
var ErrUnknownAlias = errors.New("unknown alias")

// Parser implements config.Parser for YAML data.
// It walks the goccy/go-yaml AST so every value keeps its source line.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data into an object. Empty data yields an empty object;
// when the data holds several documents, later documents override earlier ones.
func (p *Parser) Parse(data []byte, opts config.ParseOptions) (*config.Object, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", config.ErrParse, yaml.FormatError(err, false, true))
	}

	b := &builder{opts: opts, anchors: map[string]ast.Node{}}
	root := config.EmptyObject(opts.Origin())

	for _, doc := range file.Docs {
		obj, err := b.document(doc)
		if err != nil {
			return nil, err
		}

		merged, ok := obj.WithFallback(root).(*config.Object)
		if !ok {
			return nil, fmt.Errorf("%w: merging documents", config.ErrBugOrBroken)
		}

		root = merged
	}

	return root, nil
}

type builder struct {
	opts    config.ParseOptions
	anchors map[string]ast.Node
}

func (b *builder) origin(node ast.Node) *config.Origin {
	base := b.opts.Origin()

	tk := node.GetToken()
	if tk == nil || tk.Position == nil {
		return base
	}

	return base.WithLine(tk.Position.Line)
}

func (b *builder) document(doc *ast.DocumentNode) (*config.Object, error) {
	if doc == nil || doc.Body == nil {
		return config.EmptyObject(b.opts.Origin()), nil
	}

	v, err := b.value(doc.Body)
	if err != nil {
		return nil, err
	}

	obj, ok := v.(*config.Object)
	if !ok {
		if v.Type() == config.TypeNull {
			return config.EmptyObject(b.opts.Origin()), nil
		}

		return nil, fmt.Errorf("%w: %s: found %s", ErrNotMapping, v.Origin().Description(), v.Type())
	}

	return obj, nil
}

//nolint:cyclop // one case per node type
func (b *builder) value(node ast.Node) (config.Value, error) {
	if node == nil {
		return config.NewNull(b.opts.Origin()), nil
	}

	origin := b.origin(node)

	switch n := node.(type) {
	case *ast.NullNode:
		return config.NewNull(origin), nil
	case *ast.BoolNode:
		return config.NewBoolean(origin, n.Value), nil
	case *ast.IntegerNode:
		return integer(origin, n.Value), nil
	case *ast.FloatNode:
		return config.NewDouble(origin, n.Value), nil
	case *ast.InfinityNode:
		return config.NewDouble(origin, n.Value), nil
	case *ast.NanNode:
		return config.NewDouble(origin, math.NaN()), nil
	case *ast.StringNode:
		return b.scalar(n, origin)
	case *ast.LiteralNode:
		return config.NewString(origin, n.Value.Value, config.Quoted), nil
	case *ast.MappingNode:
		return b.mapping(n.Values, origin)
	case *ast.MappingValueNode:
		return b.mapping([]*ast.MappingValueNode{n}, origin)
	case *ast.SequenceNode:
		return b.sequence(n, origin)
	case *ast.AnchorNode:
		b.anchors[n.Name.GetToken().Value] = n.Value

		return b.value(n.Value)
	case *ast.AliasNode:
		name := n.Value.GetToken().Value

		target, ok := b.anchors[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s: *%s", ErrUnknownAlias, origin.Description(), name)
		}

		return b.value(target)
	case *ast.TagNode:
		if n.Start != nil && n.Start.Value == IncludeTag {
			return b.include(n, origin)
		}

		return b.value(n.Value)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported YAML node %s", config.ErrParse, origin.Description(), node.Type())
	}
}

func integer(origin *config.Origin, v any) config.Value {
	switch i := v.(type) {
	case int64:
		return config.NewInteger(origin, i)
	case uint64:
		if i > math.MaxInt64 {
			return config.NewDouble(origin, float64(i))
		}

		return config.NewInteger(origin, int64(i))
	default:
		return config.NewString(origin, fmt.Sprint(v), config.Unquoted)
	}
}

// scalar keeps quoted strings literal; plain scalars may hold substitutions.
func (b *builder) scalar(n *ast.StringNode, origin *config.Origin) (config.Value, error) {
	if n.Token != nil && (n.Token.Type == token.DoubleQuoteType || n.Token.Type == token.SingleQuoteType) {
		return config.NewString(origin, n.Value, config.Quoted), nil
	}

	return config.ParseSubstitutions(origin, n.Value, config.Unquoted)
}

func (b *builder) mapping(entries []*ast.MappingValueNode, origin *config.Origin) (config.Value, error) {
	fields := make([]config.Field, 0, len(entries))

	var merges []*config.Object

	for _, entry := range entries {
		var keyNode ast.Node = entry.Key

		if _, isMerge := keyNode.(*ast.MergeKeyNode); isMerge {
			objs, err := b.mergeSources(entry.Value)
			if err != nil {
				return nil, err
			}

			merges = append(merges, objs...)

			continue
		}

		v, err := b.value(entry.Value)
		if err != nil {
			return nil, err
		}

		fields = append(fields, config.Field{Key: keyText(keyNode), Value: v})
	}

	obj := config.NewObject(origin, fields...)

	for _, m := range merges {
		merged, ok := obj.WithFallback(m).(*config.Object)
		if !ok {
			return nil, fmt.Errorf("%w: merge key", config.ErrBugOrBroken)
		}

		obj = merged
	}

	return obj, nil
}

// mergeSources returns the objects named by a `<<` merge key, highest precedence first.
func (b *builder) mergeSources(node ast.Node) ([]*config.Object, error) {
	v, err := b.value(node)
	if err != nil {
		return nil, err
	}

	switch src := v.(type) {
	case *config.Object:
		return []*config.Object{src}, nil
	case *config.List:
		out := make([]*config.Object, 0, src.Len())

		for _, elem := range src.Values() {
			obj, ok := elem.(*config.Object)
			if !ok {
				return nil, fmt.Errorf("%w: %s: merge key needs mappings", config.ErrParse, elem.Origin().Description())
			}

			out = append(out, obj)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s: merge key needs a mapping", config.ErrParse, v.Origin().Description())
	}
}

func keyText(node ast.Node) string {
	if s, ok := node.(*ast.StringNode); ok {
		return s.Value
	}

	if tk := node.GetToken(); tk != nil {
		return tk.Value
	}

	return strings.TrimSpace(node.String())
}

func (b *builder) sequence(n *ast.SequenceNode, origin *config.Origin) (config.Value, error) {
	values := make([]config.Value, 0, len(n.Values))

	for _, elem := range n.Values {
		v, err := b.value(elem)
		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	return config.NewList(origin, values), nil
}

func (b *builder) include(n *ast.TagNode, origin *config.Origin) (config.Value, error) {
	name := ""
	if s, ok := n.Value.(*ast.StringNode); ok {
		name = s.Value
	}

	if name == "" {
		return nil, fmt.Errorf("%w: %s: %s needs a file name", config.ErrParse, origin.Description(), IncludeTag)
	}

	if b.opts.Includer == nil {
		return nil, fmt.Errorf("%w: %s: cannot include %q without an includer", config.ErrParse, origin.Description(), name)
	}

	obj, err := b.opts.Includer.Include(name, b.opts)
	if err != nil {
		return nil, fmt.Errorf("including %q: %w", name, err)
	}

	return obj, nil
}
