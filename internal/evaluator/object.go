package evaluator

import (
	"hash/fnv"

	"github.com/funvibe/canvasrt/internal/config"
)

type ObjectType string

const (
	INTEGER_OBJ    = "INTEGER"
	FLOAT_OBJ      = "FLOAT"
	BOOLEAN_OBJ    = "BOOLEAN"
	STRING_OBJ     = "STRING"
	NULL_OBJ       = "NULL"
	LIST_OBJ       = "LIST"
	TUPLE_OBJ      = "TUPLE"
	RECORD_OBJ     = "RECORD"
	OPTION_OBJ     = "OPTION"
	RESULT_OBJ     = "RESULT"
	BYTES_OBJ      = "BYTES"
	DATE_OBJ       = "DATE"
	UUID_OBJ       = "UUID"
	DB_REF_OBJ     = "DB_REFERENCE"
	LAMBDA_OBJ     = "LAMBDA"
	ERROR_OBJ      = "ERROR"
	INCOMPLETE_OBJ = "INCOMPLETE"
)

// Object is a runtime value. Values are immutable once constructed.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// TypeName returns the user-facing name of a value's type, as used in
// messages like "it's a Int".
func TypeName(obj Object) string {
	switch obj.(type) {
	case *Integer:
		return config.IntTypeName
	case *Float:
		return config.FloatTypeName
	case *Boolean:
		return config.BoolTypeName
	case *String:
		return config.StringTypeName
	case *Null:
		return config.NullTypeName
	case *List:
		return config.ListTypeName
	case *Tuple:
		return config.TupleTypeName
	case *Record:
		return config.RecordTypeName
	case *Option:
		return config.OptionTypeName
	case *Result:
		return config.ResultTypeName
	case *Bytes:
		return config.BytesTypeName
	case *Date:
		return config.DateTypeName
	case *Uuid:
		return config.UuidTypeName
	case *DbReference:
		return config.DatastoreTypeName
	case *Lambda:
		return config.LambdaTypeName
	case *Error:
		return config.ErrorTypeName
	case *Incomplete:
		return config.IncompleteTypeName
	}
	if obj == nil {
		return "nil"
	}
	return string(obj.Type())
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
