package canon

// Value is a canonical model value. Concrete types:
//
//   - String
//   - Number (decimal text, preserved verbatim from the source)
//   - Bool
//   - Null
//   - Object (ordered key/value entries)
//   - Array
type Value interface {
	canonValue() // sealed marker — only types in this package implement Value
}

// String is a text scalar.
type String string

// Number is a numeric scalar. The decimal text of the source token is kept
// as-is so that re-encoding never changes the representation.
type Number string

// Bool is a boolean scalar.
type Bool bool

// Null is the null scalar.
type Null struct{}

// Entry is one key/value pair of an Object.
type Entry struct {
	Key   string
	Value Value
}

// Object is an ordered sequence of entries with unique string keys.
// Construction does not sort or validate — that happens in Canonicalize.
type Object struct {
	Entries []Entry
}

// Array is an ordered sequence of Values.
type Array []Value

func (String) canonValue()  {}
func (Number) canonValue()  {}
func (Bool) canonValue()    {}
func (Null) canonValue()    {}
func (*Object) canonValue() {}
func (Array) canonValue()   {}

// NewObject creates an Object from entries in the given order.
func NewObject(entries ...Entry) *Object {
	return &Object{Entries: entries}
}

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.Entries) }

// Get returns the value for key, scanning entries in order.
func (o *Object) Get(key string) (Value, bool) {
	for _, e := range o.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Equal reports deep structural equality, including entry order.
// Canonicalize both sides first to compare order-independently.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Null:
		_, ok := b.(Null)
		return ok
	case *Object:
		bv, ok := b.(*Object)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if av.Entries[i].Key != bv.Entries[i].Key {
				return false
			}
			if !Equal(av.Entries[i].Value, bv.Entries[i].Value) {
				return false
			}
		}
		return true
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
