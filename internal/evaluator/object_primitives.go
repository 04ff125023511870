package evaluator

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Integer is an arbitrary-precision integer. The wrapped *big.Int is never
// mutated after construction.
type Integer struct {
	Value *big.Int
}

func NewInteger(v int64) *Integer { return &Integer{Value: big.NewInt(v)} }

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return i.Value.String() }

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string {
	if !math.IsInf(f.Value, 0) && f.Value == math.Trunc(f.Value) && math.Abs(f.Value) < 1e21 {
		return strconv.FormatFloat(f.Value, 'f', -1, 64) + ".0"
	}
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

// String keeps the exact bytes it was built from. Grapheme-aware
// operations live in the String:: built-ins.
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return `"` + s.Value + `"` }

// Null is a unit value distinct from Nothing, false and 0.
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

// Bytes
type Bytes struct {
	Value []byte
}

func (b *Bytes) Type() ObjectType { return BYTES_OBJ }
func (b *Bytes) Inspect() string  { return fmt.Sprintf("<Bytes: length=%d>", len(b.Value)) }

// Date is a UTC timestamp with second precision.
type Date struct {
	Value time.Time
}

const dateFormat = "2006-01-02T15:04:05Z"

func NewDate(t time.Time) *Date { return &Date{Value: t.UTC().Truncate(time.Second)} }

func (d *Date) Type() ObjectType { return DATE_OBJ }
func (d *Date) Inspect() string  { return d.Value.Format(dateFormat) }

// Uuid compares by its decoded 16 bytes, never by textual form.
type Uuid struct {
	Value uuid.UUID
}

func (u *Uuid) Type() ObjectType { return UUID_OBJ }
func (u *Uuid) Inspect() string  { return u.Value.String() }
