package config

// Runtime type names, as reported by typeName and in diagnostics.
const (
	IntTypeName        = "Int"
	FloatTypeName      = "Float"
	BoolTypeName       = "Bool"
	StringTypeName     = "String"
	NullTypeName       = "Null"
	ListTypeName       = "List"
	TupleTypeName      = "Tuple"
	RecordTypeName     = "Record"
	OptionTypeName     = "Option"
	ResultTypeName     = "Result"
	BytesTypeName      = "Bytes"
	DateTypeName       = "Date"
	UuidTypeName       = "Uuid"
	DatastoreTypeName  = "Datastore"
	LambdaTypeName     = "Lambda"
	ErrorTypeName      = "Error"
	IncompleteTypeName = "Incomplete"
)

// Constructor names for Option and Result.
const (
	JustCtorName    = "Just"
	NothingCtorName = "Nothing"
	OkCtorName      = "Ok"
	ErrorCtorName   = "Error"
)

// Diagnostic messages. Formats take their arguments in the order shown.
const (
	MsgUnknownVariable    = "There is no variable named: %s"
	MsgIfNotBool          = "If only supports Booleans"
	MsgAndNotBool         = "&& only supports Booleans"
	MsgOrNotBool          = "|| only supports Booleans"
	MsgFieldEmpty         = "Field name is empty"
	MsgFieldNotRecord     = "Attempting to access a field of something that isn't a record or dict, (it's a %s)."
	MsgFieldMissing       = "No field named %s in record"
	MsgArity              = "%s has %d parameters, but here was called with %d arguments."
	MsgLambdaArity        = "Expected %d arguments, got %d"
	MsgParamType          = "Type error(s) in function parameters: Expected to see a value of type %s but found a %s."
	MsgUnknownError       = "Unknown error"
	MsgFunctionNotFound   = "Function %s is not found"
	MsgNotAFunction       = "Expected a function value, but found a %s"
	MsgMaxDepth           = "maximum recursion depth exceeded"
	MsgUnknownOperator    = "Unknown operator %s"
	MsgConstructorArity   = "%s expects %d argument(s), got %d"
	MsgUnknownConstructor = "Unknown constructor %s"
	MsgPipeStep           = "Unsupported pipe step"
)

// InfixFunctions maps infix operators to the standard-library function
// that implements them. Logical and equality operators are evaluated
// directly and are not listed.
var InfixFunctions = map[string]string{
	"+":  "Int::add",
	"-":  "Int::subtract",
	"*":  "Int::multiply",
	"%":  "Int::mod",
	"^":  "Int::power",
	"<":  "Int::lessThan",
	">":  "Int::greaterThan",
	"<=": "Int::lessThanOrEqualTo",
	">=": "Int::greaterThanOrEqualTo",
	"/":  "Float::divide",
	"++": "String::append",
}

// DefaultMaxEvalDepth bounds nested evaluation to keep user recursion from
// overflowing the Go stack.
const DefaultMaxEvalDepth = 10000
