package jsvalue

// Kind identifies the variant of a Value.
type Kind int

// Value kinds. Int, Uint and Float all report KindNumber.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindCode
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Value is a node of a configuration tree.
// The set of implementations is closed to this package.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the null literal.
type Null struct{}

// Bool is a boolean literal.
type Bool bool

// Int is a signed integer literal.
type Int int64

// Uint is an unsigned integer literal.
type Uint uint64

// Float is a floating point literal. NaN and infinities serialize as null.
type Float float64

// String is a string literal.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Object is an ordered mapping. Keys must be unique.
type Object []Member

// Member is one key/value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Code is script text emitted verbatim.
type Code string

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindNumber }
func (Uint) Kind() Kind   { return KindNumber }
func (Float) Kind() Kind  { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }
func (Code) Kind() Kind   { return KindCode }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Uint) isValue()   {}
func (Float) isValue()  {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}
func (Code) isValue()   {}

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Map is an ordered mapping of caller input, converted by From.
//
//	jsvalue.Map{{"x", []int{1, 2}}, {"type", "scatter"}}
type Map []Pair

// Pair is one entry of a Map.
type Pair struct {
	Key   string
	Value any
}

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key, or appends a new pair.
func (m Map) Set(key string, value any) Map {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, Pair{Key: key, Value: value})
}
