package evaluator

// Option is Just Value, or Nothing when Value is nil.
type Option struct {
	Value Object
}

var NOTHING = &Option{}

func Just(v Object) *Option { return &Option{Value: v} }

func (o *Option) IsJust() bool     { return o.Value != nil }
func (o *Option) Type() ObjectType { return OPTION_OBJ }
func (o *Option) Inspect() string {
	if o.Value == nil {
		return "Nothing"
	}
	return "Just " + o.Value.Inspect()
}

// Result is Ok Value or Error Value.
type Result struct {
	IsOk  bool
	Value Object
}

func Ok(v Object) *Result   { return &Result{IsOk: true, Value: v} }
func Fail(v Object) *Result { return &Result{IsOk: false, Value: v} }

func (r *Result) Type() ObjectType { return RESULT_OBJ }
func (r *Result) Inspect() string {
	if r.IsOk {
		return "Ok " + r.Value.Inspect()
	}
	return "Error " + r.Value.Inspect()
}

// DbReference names a datastore. It is only ever equal to a reference to
// the same datastore.
type DbReference struct {
	Name string
}

func (d *DbReference) Type() ObjectType { return DB_REF_OBJ }
func (d *DbReference) Inspect() string  { return "<Datastore: " + d.Name + ">" }
