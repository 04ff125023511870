// Package treecodec reads and writes expression trees as YAML.
//
// An expression is either a plain scalar, which is a literal (5, 1.5,
// true, "text", ~), or a mapping with exactly one key naming the form:
//
//	var:     x
//	let:     {name: x, value: E, body: E}
//	if:      {cond: E, then: E, else: E}
//	infix:   {op: "+", left: E, right: E}      # left omitted inside a pipe step
//	match:   {on: E, arms: [{pattern: P, body: E}, ...]}
//	lambda:  {params: [x, y], body: E}
//	list:    [E, ...]
//	tuple:   [E, E, ...]
//	record:  {field: E, ...}                   # declaration order is kept
//	just:    E          nothing: ~          ok: E          error: E
//	field:   {of: E, name: x}
//	pipe:    [source, step, ...]
//	call:    {fn: "Int::add", args: [E, ...]}
//	apply:   {fn: E, args: [E, ...]}
//	flag:    {name: n, cond: E, old: E, new: E}
//	str:     "text"                            # explicit string literal
//
// Patterns use the same scalar literals plus var (var: _ is the
// wildcard), just, nothing, ok, error and tuple.
package treecodec
