package ast

// LetExpression binds Name to Value for the evaluation of Body.
type LetExpression struct {
	ID    ID
	Name  string
	Value Expression
	Body  Expression
}

func (le *LetExpression) GetID() ID       { return le.ID }
func (le *LetExpression) expressionNode() {}

type IfExpression struct {
	ID          ID
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ie *IfExpression) GetID() ID       { return ie.ID }
func (ie *IfExpression) expressionNode() {}

// InfixExpression covers the logical operators (&&, ||), equality (=, <>)
// and the arithmetic, comparison and string operators that resolve to
// standard-library functions.
type InfixExpression struct {
	ID       ID
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) GetID() ID       { return ie.ID }
func (ie *InfixExpression) expressionNode() {}

// MatchArm is one `pattern -> expression` case of a match.
type MatchArm struct {
	Pattern    Pattern
	Expression Expression
}

type MatchExpression struct {
	ID         ID
	Expression Expression
	Arms       []*MatchArm
}

func (me *MatchExpression) GetID() ID       { return me.ID }
func (me *MatchExpression) expressionNode() {}

// FunctionLiteral is an anonymous lambda.
type FunctionLiteral struct {
	ID         ID
	Parameters []string
	Body       Expression
}

func (fl *FunctionLiteral) GetID() ID       { return fl.ID }
func (fl *FunctionLiteral) expressionNode() {}

type ListLiteral struct {
	ID       ID
	Elements []Expression
}

func (ll *ListLiteral) GetID() ID       { return ll.ID }
func (ll *ListLiteral) expressionNode() {}

type TupleLiteral struct {
	ID       ID
	Elements []Expression
}

func (tl *TupleLiteral) GetID() ID       { return tl.ID }
func (tl *TupleLiteral) expressionNode() {}

// RecordField keeps declaration order; it is also evaluation order.
type RecordField struct {
	Key   string
	Value Expression
}

type RecordLiteral struct {
	ID     ID
	Fields []RecordField
}

func (rl *RecordLiteral) GetID() ID       { return rl.ID }
func (rl *RecordLiteral) expressionNode() {}

// ConstructorExpression builds Just, Nothing, Ok or Error.
type ConstructorExpression struct {
	ID        ID
	Name      string
	Arguments []Expression
}

func (ce *ConstructorExpression) GetID() ID       { return ce.ID }
func (ce *ConstructorExpression) expressionNode() {}

// MemberExpression is field access: record.field
type MemberExpression struct {
	ID     ID
	Left   Expression
	Member string
}

func (me *MemberExpression) GetID() ID       { return me.ID }
func (me *MemberExpression) expressionNode() {}

// PipeExpression threads Source through Steps. Each step receives the
// previous result as its first argument (or as the left operand of an
// infix step).
type PipeExpression struct {
	ID     ID
	Source Expression
	Steps  []Expression
}

func (pe *PipeExpression) GetID() ID       { return pe.ID }
func (pe *PipeExpression) expressionNode() {}

// PipeTarget marks the slot a pipe fills inside an infix step, e.g. the
// left operand of `x |> (+) 1`.
type PipeTarget struct {
	ID ID
}

func (pt *PipeTarget) GetID() ID       { return pt.ID }
func (pt *PipeTarget) expressionNode() {}

// CallExpression calls a named user, standard-library or package function.
type CallExpression struct {
	ID        ID
	Function  FQFnName
	Arguments []Expression
}

func (ce *CallExpression) GetID() ID       { return ce.ID }
func (ce *CallExpression) expressionNode() {}

// ApplyExpression calls a lambda value.
type ApplyExpression struct {
	ID        ID
	Function  Expression
	Arguments []Expression
}

func (ae *ApplyExpression) GetID() ID       { return ae.ID }
func (ae *ApplyExpression) expressionNode() {}

// FeatureFlagExpression evaluates New only when Condition is exactly true.
type FeatureFlagExpression struct {
	ID        ID
	Name      string
	Condition Expression
	Old       Expression
	New       Expression
}

func (ff *FeatureFlagExpression) GetID() ID       { return ff.ID }
func (ff *FeatureFlagExpression) expressionNode() {}
