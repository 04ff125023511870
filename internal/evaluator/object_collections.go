package evaluator

import (
	"strings"
)

// List
type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string  { return "[" + inspectAll(l.Elements) + "]" }

func newList(elements []Object) *List {
	return &List{Elements: elements}
}

// Tuple has two or more elements.
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string  { return "(" + inspectAll(t.Elements) + ")" }

// Record maps non-empty field names to values. Field order is not part
// of its identity.
type Record struct {
	Fields *PersistentMap
}

func NewRecord() *Record {
	return &Record{Fields: EmptyMap()}
}

// Put returns a record with key set to val; a later Put of the same key wins.
func (r *Record) Put(key string, val Object) *Record {
	return &Record{Fields: r.Fields.Put(key, val)}
}

func (r *Record) Get(key string) (Object, bool) {
	return r.Fields.Get(key)
}

func (r *Record) Len() int { return r.Fields.Len() }

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	keys := r.Fields.SortedKeys()
	if len(keys) == 0 {
		return "{}"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		v, _ := r.Fields.Get(k)
		parts[i] = k + ": " + v.Inspect()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func inspectAll(objs []Object) string {
	parts := make([]string, len(objs))
	for i, o := range objs {
		parts[i] = o.Inspect()
	}
	return strings.Join(parts, ", ")
}
