package ast

import (
	"math/big"
	"sync/atomic"
)

// ID identifies a node in an expression tree. Evaluation results that
// describe a failure record the ID of the node that produced them.
type ID uint64

var lastID atomic.Uint64

// NewID returns an ID that has not been handed out before in this process.
func NewID() ID {
	return ID(lastID.Add(1))
}

// Node is the base interface for all tree nodes.
type Node interface {
	GetID() ID
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a Node that a match expression tests a value against.
type Pattern interface {
	Node
	patternNode()
}

// IntegerLiteral is an arbitrary-precision integer constant.
type IntegerLiteral struct {
	ID    ID
	Value *big.Int
}

func (il *IntegerLiteral) GetID() ID       { return il.ID }
func (il *IntegerLiteral) expressionNode() {}

// FloatLiteral is an IEEE double constant.
type FloatLiteral struct {
	ID    ID
	Value float64
}

func (fl *FloatLiteral) GetID() ID       { return fl.ID }
func (fl *FloatLiteral) expressionNode() {}

type BooleanLiteral struct {
	ID    ID
	Value bool
}

func (bl *BooleanLiteral) GetID() ID       { return bl.ID }
func (bl *BooleanLiteral) expressionNode() {}

// StringLiteral holds the string exactly as authored; no normalization is applied.
type StringLiteral struct {
	ID    ID
	Value string
}

func (sl *StringLiteral) GetID() ID       { return sl.ID }
func (sl *StringLiteral) expressionNode() {}

type NullLiteral struct {
	ID ID
}

func (nl *NullLiteral) GetID() ID       { return nl.ID }
func (nl *NullLiteral) expressionNode() {}

// Identifier is a variable reference.
type Identifier struct {
	ID    ID
	Value string
}

func (i *Identifier) GetID() ID       { return i.ID }
func (i *Identifier) expressionNode() {}
