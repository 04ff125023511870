package evaluator

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/typesystem"
)

func uuidBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:       ast.StdlibName("Uuid", "parse", 0),
			Fn:         builtinUuidParse,
			Parameters: params(param("uuid", typesystem.String)),
			ReturnType: typesystem.Result(typesystem.Uuid, typesystem.String),
		},
		{
			Name:        ast.StdlibName("Uuid", "generate", 0),
			Fn:          builtinUuidGenerate,
			ReturnType:  typesystem.Uuid,
			Description: "A new random (version 4) UUID",
		},
		{
			Name:       ast.StdlibName("Uuid", "toString", 0),
			Fn:         builtinUuidToString,
			Parameters: params(param("uuid", typesystem.Uuid)),
			ReturnType: typesystem.String,
		},
	}
}

func builtinUuidParse(e *Evaluator, args ...Object) Object {
	id, err := uuid.Parse(args[0].(*String).Value)
	if err != nil {
		return Fail(&String{Value: "`uuid` parameter was not of form XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX"})
	}
	return Ok(&Uuid{Value: id})
}

// builtinUuidGenerate panics if the system randomness source fails.
func builtinUuidGenerate(e *Evaluator, args ...Object) Object {
	return &Uuid{Value: uuid.Must(uuid.NewRandom())}
}

func builtinUuidToString(e *Evaluator, args ...Object) Object {
	return &String{Value: args[0].(*Uuid).Value.String()}
}

func dateBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:        ast.StdlibName("Date", "parse", 0),
			Fn:          builtinDateParse,
			Parameters:  params(param("s", typesystem.String)),
			ReturnType:  typesystem.Result(typesystem.Date, typesystem.String),
			Description: "Parses a date in any common format; times without a zone are UTC",
		},
		{
			Name:       ast.StdlibName("Date", "toString", 0),
			Fn:         builtinDateToString,
			Parameters: params(param("date", typesystem.Date)),
			ReturnType: typesystem.String,
		},
		{
			Name:       ast.StdlibName("Date", "year", 0),
			Fn:         builtinDateYear,
			Parameters: params(param("date", typesystem.Date)),
			ReturnType: typesystem.Int,
		},
	}
}

func builtinDateParse(e *Evaluator, args ...Object) Object {
	t, err := dateparse.ParseIn(args[0].(*String).Value, time.UTC)
	if err != nil {
		return Fail(&String{Value: "Invalid date format"})
	}
	return Ok(NewDate(t))
}

func builtinDateToString(e *Evaluator, args ...Object) Object {
	return &String{Value: args[0].(*Date).Inspect()}
}

func builtinDateYear(e *Evaluator, args ...Object) Object {
	return NewInteger(int64(args[0].(*Date).Value.Year()))
}
