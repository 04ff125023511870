package ast

import "math/big"

// IdentifierPattern always matches and binds the scrutinee.
type IdentifierPattern struct {
	ID    ID
	Value string
}

func (ip *IdentifierPattern) GetID() ID    { return ip.ID }
func (ip *IdentifierPattern) patternNode() {}

type WildcardPattern struct {
	ID ID
}

func (wp *WildcardPattern) GetID() ID    { return wp.ID }
func (wp *WildcardPattern) patternNode() {}

// LiteralPattern matches Int, Float, Bool, String or Null scrutinees.
// Value holds *big.Int, float64, bool, string or nil (for Null).
type LiteralPattern struct {
	ID    ID
	Value interface{}
}

func (lp *LiteralPattern) GetID() ID    { return lp.ID }
func (lp *LiteralPattern) patternNode() {}

// NewIntPattern is a convenience for LiteralPattern{Value: *big.Int}.
func NewIntPattern(v int64) *LiteralPattern {
	return &LiteralPattern{ID: NewID(), Value: big.NewInt(v)}
}

// ConstructorPattern matches Just, Nothing, Ok and Error.
type ConstructorPattern struct {
	ID       ID
	Name     string
	Elements []Pattern
}

func (cp *ConstructorPattern) GetID() ID    { return cp.ID }
func (cp *ConstructorPattern) patternNode() {}

type TuplePattern struct {
	ID       ID
	Elements []Pattern
}

func (tp *TuplePattern) GetID() ID    { return tp.ID }
func (tp *TuplePattern) patternNode() {}
