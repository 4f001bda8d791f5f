package db

import "strings"

// Target is either a stored procedure or literal query text.
type Target struct {
	text string
	proc bool
}

func Procedure(name string) Target {
	return Target{text: strings.TrimSpace(name), proc: true}
}

func Text(query string) Target {
	return Target{text: query}
}

func (t Target) IsProcedure() bool { return t.proc }

// command qualifies bare procedure names with schema; the driver treats a
// query without whitespace as a procedure call.
func (t Target) command(schema string) string {
	if !t.proc || schema == "" || strings.Contains(t.text, ".") {
		return t.text
	}
	return schema + "." + t.text
}

func (t Target) label() string {
	if t.proc {
		return t.text
	}
	return "text"
}
