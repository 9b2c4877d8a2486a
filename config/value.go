package config

import (
	"math"
	"strconv"
	"strings"
)

// ValueType tags the kind of a Value.
type ValueType int

// Value kinds. TypeUnspecified is only meaningful as an expected kind and
// TypeUnresolved only appears in trees that have not been resolved.
const (
	TypeUnspecified ValueType = iota
	TypeObject
	TypeList
	TypeNumber
	TypeBoolean
	TypeNull
	TypeString
	TypeUnresolved
)

func (t ValueType) String() string {
	switch t {
	case TypeUnspecified:
		return "UNSPECIFIED"
	case TypeObject:
		return "OBJECT"
	case TypeList:
		return "LIST"
	case TypeNumber:
		return "NUMBER"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeNull:
		return "NULL"
	case TypeString:
		return "STRING"
	case TypeUnresolved:
		return "UNRESOLVED"
	default:
		return "ValueType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ResolveStatus tells whether substitutions remain beneath a value.
type ResolveStatus int

const (
	// Unresolved means at least one substitution placeholder remains.
	Unresolved ResolveStatus = iota
	// Resolved means the value contains no substitution placeholders.
	Resolved
)

func (s ResolveStatus) String() string {
	if s == Resolved {
		return "RESOLVED"
	}

	return "UNRESOLVED"
}

func statusOf(values ...Value) ResolveStatus {
	for _, v := range values {
		if v.ResolveStatus() != Resolved {
			return Unresolved
		}
	}

	return Resolved
}

// Mergeable is anything that can be used as a fallback: a Config or any Value.
type Mergeable interface {
	toFallbackValue() Value
}

// Value is one immutable node of a configuration tree. The set of
// implementations is closed: *Null, *Boolean, *Number, *String, *List,
// *Object, and the placeholders *Substitution, *Concatenation and
// *DelayedMerge.
type Value interface {
	Mergeable

	Origin() *Origin
	Type() ValueType
	ResolveStatus() ResolveStatus
	// Unwrapped returns the plain Go representation of the value.
	Unwrapped() any
	// Render returns a compact textual form for diagnostics.
	Render() string
}

// Null is an explicit null.
type Null struct {
	origin *Origin
}

// NewNull creates a null value.
func NewNull(origin *Origin) *Null {
	return &Null{origin: origin}
}

func (n *Null) Origin() *Origin              { return n.origin }
func (n *Null) Type() ValueType              { return TypeNull }
func (n *Null) ResolveStatus() ResolveStatus { return Resolved }
func (n *Null) Unwrapped() any               { return nil }
func (n *Null) Render() string               { return "null" }
func (n *Null) toFallbackValue() Value       { return n }

// Boolean is a true/false value.
type Boolean struct {
	origin *Origin
	value  bool
}

// NewBoolean creates a boolean value.
func NewBoolean(origin *Origin, value bool) *Boolean {
	return &Boolean{origin: origin, value: value}
}

// Bool returns the boolean.
func (b *Boolean) Bool() bool { return b.value }

func (b *Boolean) Origin() *Origin              { return b.origin }
func (b *Boolean) Type() ValueType              { return TypeBoolean }
func (b *Boolean) ResolveStatus() ResolveStatus { return Resolved }
func (b *Boolean) Unwrapped() any               { return b.value }
func (b *Boolean) Render() string               { return strconv.FormatBool(b.value) }
func (b *Boolean) toFallbackValue() Value       { return b }

// NumberKind is the width a number was stored with.
type NumberKind int

// Number widths.
const (
	NumberInt NumberKind = iota
	NumberLong
	NumberDouble
)

// Number is an integer or floating point value.
type Number struct {
	origin *Origin
	kind   NumberKind
	long   int64
	double float64
}

// NewInt creates a 32-bit integer number.
func NewInt(origin *Origin, value int32) *Number {
	return &Number{origin: origin, kind: NumberInt, long: int64(value), double: float64(value)}
}

// NewLong creates a 64-bit integer number.
func NewLong(origin *Origin, value int64) *Number {
	return &Number{origin: origin, kind: NumberLong, long: value, double: float64(value)}
}

// NewDouble creates a floating point number.
func NewDouble(origin *Origin, value float64) *Number {
	return &Number{origin: origin, kind: NumberDouble, long: int64(value), double: value}
}

// NewInteger creates the narrowest integer number able to hold value.
func NewInteger(origin *Origin, value int64) *Number {
	if value >= math.MinInt32 && value <= math.MaxInt32 {
		return NewInt(origin, int32(value))
	}

	return NewLong(origin, value)
}

// Kind returns the stored width.
func (n *Number) Kind() NumberKind { return n.kind }

// LongValue returns the number as int64, truncating doubles.
func (n *Number) LongValue() int64 { return n.long }

// DoubleValue returns the number as float64.
func (n *Number) DoubleValue() float64 { return n.double }

// IntValueRangeChecked returns the number as a 32-bit int, failing with
// ErrNumericOverflow if it does not fit.
func (n *Number) IntValueRangeChecked(path string) (int, error) {
	fits := n.long >= math.MinInt32 && n.long <= math.MaxInt32
	if n.kind == NumberDouble {
		fits = n.double >= math.MinInt32 && n.double <= math.MaxInt32
	}

	if !fits {
		return 0, newError(ErrNumericOverflow, n.origin, path,
			"%s has a value %s which is out of range for a 32-bit integer", path, n.Render())
	}

	return int(n.long), nil
}

func (n *Number) Origin() *Origin              { return n.origin }
func (n *Number) Type() ValueType              { return TypeNumber }
func (n *Number) ResolveStatus() ResolveStatus { return Resolved }
func (n *Number) toFallbackValue() Value       { return n }

func (n *Number) Unwrapped() any {
	switch n.kind {
	case NumberInt:
		return int(n.long)
	case NumberLong:
		return n.long
	default:
		return n.double
	}
}

func (n *Number) Render() string {
	if n.kind == NumberDouble {
		return strconv.FormatFloat(n.double, 'g', -1, 64)
	}

	return strconv.FormatInt(n.long, 10)
}

// Quoting tells how a string was written in its source.
type Quoting int

// String quoting kinds.
const (
	Quoted Quoting = iota
	Unquoted
)

// String is a text value.
type String struct {
	origin  *Origin
	text    string
	quoting Quoting
}

// NewString creates a string value.
func NewString(origin *Origin, text string, quoting Quoting) *String {
	return &String{origin: origin, text: text, quoting: quoting}
}

// Text returns the string.
func (s *String) Text() string { return s.text }

// Quoting returns how the string was written.
func (s *String) Quoting() Quoting { return s.quoting }

func (s *String) Origin() *Origin              { return s.origin }
func (s *String) Type() ValueType              { return TypeString }
func (s *String) ResolveStatus() ResolveStatus { return Resolved }
func (s *String) Unwrapped() any               { return s.text }
func (s *String) Render() string               { return strconv.Quote(s.text) }
func (s *String) toFallbackValue() Value       { return s }

// List is an ordered sequence of values.
type List struct {
	origin *Origin
	values []Value
	status ResolveStatus
}

// NewList creates a list. The slice is owned by the list afterwards.
func NewList(origin *Origin, values []Value) *List {
	return &List{origin: origin, values: values, status: statusOf(values...)}
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.values) }

// At returns the i-th element.
func (l *List) At(i int) Value { return l.values[i] }

// Values returns a copy of the elements.
func (l *List) Values() []Value {
	out := make([]Value, len(l.values))
	copy(out, l.values)

	return out
}

func (l *List) Origin() *Origin              { return l.origin }
func (l *List) Type() ValueType              { return TypeList }
func (l *List) ResolveStatus() ResolveStatus { return l.status }
func (l *List) toFallbackValue() Value       { return l }

func (l *List) Unwrapped() any {
	out := make([]any, len(l.values))
	for i, v := range l.values {
		out[i] = v.Unwrapped()
	}

	return out
}

func (l *List) Render() string {
	parts := make([]string, len(l.values))
	for i, v := range l.values {
		parts[i] = v.Render()
	}

	return "[" + strings.Join(parts, ",") + "]"
}

// Substitution is a deferred reference to another path, written ${path}
// or ${?path} when optional. It only exists before resolution.
type Substitution struct {
	origin   *Origin
	path     Path
	optional bool
}

// NewSubstitution creates a substitution placeholder.
func NewSubstitution(origin *Origin, path Path, optional bool) *Substitution {
	return &Substitution{origin: origin, path: path, optional: optional}
}

// Path returns the referenced path.
func (s *Substitution) Path() Path { return s.path }

// Optional reports whether a missing target is allowed.
func (s *Substitution) Optional() bool { return s.optional }

func (s *Substitution) Origin() *Origin              { return s.origin }
func (s *Substitution) Type() ValueType              { return TypeUnresolved }
func (s *Substitution) ResolveStatus() ResolveStatus { return Unresolved }
func (s *Substitution) Unwrapped() any               { return s.Render() }
func (s *Substitution) toFallbackValue() Value       { return s }

func (s *Substitution) Render() string {
	if s.optional {
		return "${?" + s.path.Render() + "}"
	}

	return "${" + s.path.Render() + "}"
}

// Concatenation is a string built from literal pieces and substitutions,
// such as "http://${host}:${port}". It only exists before resolution.
type Concatenation struct {
	origin *Origin
	parts  []Value
}

// NewConcatenation creates a concatenation placeholder.
func NewConcatenation(origin *Origin, parts []Value) *Concatenation {
	return &Concatenation{origin: origin, parts: parts}
}

// Parts returns a copy of the pieces.
func (c *Concatenation) Parts() []Value {
	out := make([]Value, len(c.parts))
	copy(out, c.parts)

	return out
}

func (c *Concatenation) Origin() *Origin              { return c.origin }
func (c *Concatenation) Type() ValueType              { return TypeUnresolved }
func (c *Concatenation) ResolveStatus() ResolveStatus { return Unresolved }
func (c *Concatenation) Unwrapped() any               { return c.Render() }
func (c *Concatenation) toFallbackValue() Value       { return c }

func (c *Concatenation) Render() string {
	var b strings.Builder

	for _, p := range c.parts {
		if s, ok := p.(*String); ok {
			b.WriteString(s.text)

			continue
		}

		b.WriteString(p.Render())
	}

	return b.String()
}

// DelayedMerge is an unresolved value stacked over its fallbacks. The
// merge happens after resolution, so a layer that resolves to nothing or
// to null leaves the next layer visible. It only exists before resolution.
type DelayedMerge struct {
	origin *Origin
	layers []Value
}

// NewDelayedMerge stacks layers, highest precedence first. Nested delayed
// merges are flattened.
func NewDelayedMerge(origin *Origin, layers ...Value) *DelayedMerge {
	flat := make([]Value, 0, len(layers))

	for _, layer := range layers {
		if dm, ok := layer.(*DelayedMerge); ok {
			flat = append(flat, dm.layers...)

			continue
		}

		flat = append(flat, layer)
	}

	return &DelayedMerge{origin: origin, layers: flat}
}

// Layers returns a copy of the stacked values, highest precedence first.
func (d *DelayedMerge) Layers() []Value {
	out := make([]Value, len(d.layers))
	copy(out, d.layers)

	return out
}

func (d *DelayedMerge) Origin() *Origin              { return d.origin }
func (d *DelayedMerge) Type() ValueType              { return TypeUnresolved }
func (d *DelayedMerge) ResolveStatus() ResolveStatus { return Unresolved }
func (d *DelayedMerge) Unwrapped() any               { return d.Render() }
func (d *DelayedMerge) toFallbackValue() Value       { return d }

func (d *DelayedMerge) Render() string {
	parts := make([]string, len(d.layers))
	for i, layer := range d.layers {
		parts[i] = layer.Render()
	}

	return strings.Join(parts, " over ")
}
