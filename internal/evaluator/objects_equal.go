package evaluator

import (
	"bytes"
	"math"
)

// ObjectsEqual is structural equality across every value kind. Lambdas
// and datastore references are equal only to the identical instance.
// Values of different kinds are never equal, so Null never equals
// Nothing, false, 0 or 0.0.
func ObjectsEqual(a, b Object) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Integer:
		return aVal.Value.Cmp(b.(*Integer).Value) == 0
	case *Float:
		bVal := b.(*Float)
		if math.IsNaN(aVal.Value) && math.IsNaN(bVal.Value) {
			return true
		}
		return aVal.Value == bVal.Value
	case *Boolean:
		return aVal.Value == b.(*Boolean).Value
	case *String:
		return aVal.Value == b.(*String).Value
	case *Null:
		return true
	case *List:
		return elementsEqual(aVal.Elements, b.(*List).Elements)
	case *Tuple:
		return elementsEqual(aVal.Elements, b.(*Tuple).Elements)
	case *Record:
		bVal := b.(*Record)
		if aVal.Len() != bVal.Len() {
			return false
		}
		equal := true
		aVal.Fields.Range(func(key string, value Object) {
			if !equal {
				return
			}
			other, ok := bVal.Get(key)
			equal = ok && ObjectsEqual(value, other)
		})
		return equal
	case *Option:
		bVal := b.(*Option)
		if aVal.IsJust() != bVal.IsJust() {
			return false
		}
		return !aVal.IsJust() || ObjectsEqual(aVal.Value, bVal.Value)
	case *Result:
		bVal := b.(*Result)
		return aVal.IsOk == bVal.IsOk && ObjectsEqual(aVal.Value, bVal.Value)
	case *Bytes:
		return bytes.Equal(aVal.Value, b.(*Bytes).Value)
	case *Date:
		return aVal.Value.Equal(b.(*Date).Value)
	case *Uuid:
		return aVal.Value == b.(*Uuid).Value
	case *DbReference:
		return false
	case *Lambda:
		return aVal.id == b.(*Lambda).id
	case *Error:
		return aVal.Message == b.(*Error).Message
	case *Incomplete:
		return true
	}

	return false
}

func elementsEqual(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ObjectsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
