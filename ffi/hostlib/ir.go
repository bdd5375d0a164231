package hostlib

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

type parsedIR struct {
	sourceFile string
	body       []string
}

var topLevelKeywords = []string{
	"define", "declare", "target", "attributes", "module", "uselistorder", "uselistorder_bb",
}

// parseIR checks the top-level structure of textual IR. name is used as the
// default source file and in diagnostics.
func parseIR(name string, text []byte) (*parsedIR, error) {
	if bytes.HasPrefix(text, bitcodeMagic) || bytes.HasPrefix(text, bitcodeWrapper) {
		return nil, fmt.Errorf("%s: error: bitcode input is not supported", name)
	}
	if !utf8.Valid(text) {
		return nil, fmt.Errorf("%s: error: input is not valid UTF-8 text", name)
	}

	p := &parsedIR{sourceFile: name}
	lines := strings.Split(string(text), "\n")
	depth := 0

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		lineno := i + 1
		col := len(line) - len(strings.TrimLeft(line, " \t")) + 1

		if depth == 0 {
			switch {
			case trimmed == "":
				p.body = append(p.body, "")
				continue
			case strings.HasPrefix(trimmed, "; ModuleID"):
				continue
			case strings.HasPrefix(trimmed, ";"):
				p.body = append(p.body, line)
				continue
			case strings.HasPrefix(trimmed, "source_filename"):
				v, ok := sourceFilename(trimmed)
				if !ok {
					return nil, fmt.Errorf("%s:%d:%d: error: expected string constant", name, lineno, col)
				}
				p.sourceFile = v
				continue
			case !isTopLevel(trimmed):
				return nil, fmt.Errorf("%s:%d:%d: error: expected top-level entity", name, lineno, col)
			}
		}

		depth += braceDelta(line)
		if depth < 0 {
			return nil, fmt.Errorf("%s:%d:%d: error: unexpected '}'", name, lineno, col)
		}
		p.body = append(p.body, line)
	}

	if depth != 0 {
		return nil, fmt.Errorf("%s:%d:1: error: expected '}' at end of function body", name, len(lines))
	}

	p.body = trimBlank(p.body)
	return p, nil
}

func isTopLevel(s string) bool {
	switch s[0] {
	case '@', '%', '!', '$', '^':
		return true
	}
	word, _, _ := strings.Cut(s, " ")
	for _, kw := range topLevelKeywords {
		if word == kw {
			return true
		}
	}
	return false
}

func sourceFilename(s string) (string, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(s, "source_filename"))
	rest, ok := strings.CutPrefix(rest, "=")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}

// braceDelta counts braces outside string literals and comments.
func braceDelta(line string) int {
	d := 0
	inString := false
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case ch == '"':
			inString = !inString
		case inString:
		case ch == ';':
			return d
		case ch == '{':
			d++
		case ch == '}':
			d--
		}
	}
	return d
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

// print renders the module in the layout of LLVMPrintModuleToString.
func (m *module) print() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; ModuleID = '%s'\n", m.identifier())
	fmt.Fprintf(&b, "source_filename = \"%s\"\n", m.sourceFile)
	if len(m.body) > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Join(m.body, "\n"))
		b.WriteByte('\n')
	}
	return b.String()
}
