// Package interp interprets the lines submitted to the REPL.
//
// A line is a list of space-separated tokens. A token containing ':' starts
// an entry: the text before the colon is the key, and the text after it (if
// any) together with the following tokens up to the next key are the
// arguments. The tokens ":q" and ":quit" anywhere in the line quit, and a
// line consisting of ":h" or ":help" asks for help.
package interp

import (
	"strconv"
	"strings"
)

// Kind is the kind of a Result.
type Kind int

// Possible values for Kind.
const (
	Unrecognized Kind = iota
	Help
	Quit
	Text
)

var kindNames = [...]string{
	Unrecognized: "unrecognized", Help: "help", Quit: "quit", Text: "text"}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Entry is a key with its arguments.
type Entry struct {
	Key  string
	Args []string
}

func (e Entry) String() string {
	var sb strings.Builder
	sb.WriteString("{key: ")
	sb.WriteString(strconv.Quote(e.Key))
	sb.WriteString(", args: [")
	for i, arg := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(arg))
	}
	sb.WriteString("]}")
	return sb.String()
}

// Result is the outcome of interpreting a line. Text is what should be shown
// to the user; it is empty for Quit.
type Result struct {
	Kind    Kind
	Text    string
	Entries []Entry
}

// Texts shown for results without entries.
const (
	HelpText         = "Help!"
	UnrecognizedText = "Could not parse"
)

// Interpret interprets a line.
func Interpret(line string) Result {
	fields := strings.Fields(line)
	if len(fields) == 1 && (fields[0] == ":h" || fields[0] == ":help") {
		return Result{Kind: Help, Text: HelpText}
	}
	for _, f := range fields {
		if f == ":q" || f == ":quit" {
			return Result{Kind: Quit}
		}
	}

	entries := parseEntries(fields)
	if len(entries) == 0 {
		return Result{Kind: Unrecognized, Text: UnrecognizedText}
	}
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.String()
	}
	return Result{Kind: Text, Text: strings.Join(texts, ",\t"), Entries: entries}
}

func parseEntries(fields []string) []Entry {
	var entries []Entry
	for _, f := range fields {
		if key, arg, isKey := strings.Cut(f, ":"); isKey {
			e := Entry{Key: key}
			if arg != "" {
				e.Args = append(e.Args, arg)
			}
			entries = append(entries, e)
		} else if len(entries) > 0 {
			last := &entries[len(entries)-1]
			last.Args = append(last.Args, f)
		}
	}
	return entries
}
