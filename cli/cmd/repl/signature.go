package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// signatureHintStyle styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// segment is the command under the cursor.
type segment struct {
	name    string // command name, empty while it is being typed
	arg     int    // index of the argument at the cursor (0-based)
	command bool   // true if the cursor is on the command name
}

// commandAt finds the command whose arguments contain the cursor. A command
// starts at the beginning of input, after the delimiter or a newline, or
// after an unmatched '('. Parenthesized arguments count as one argument.
func commandAt(input string, cursor int, delim rune) segment {
	if cursor > len(input) {
		cursor = len(input)
	}

	text := input[:cursor]
	start := 0
	depth := 0

scan:
	for i := len(text); i > 0; {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size

		switch {
		case r == ')':
			depth++

		case r == '(':
			if depth == 0 {
				start = i + size

				break scan
			}

			depth--

		case depth == 0 && (r == delim || r == '\n'):
			start = i + size

			break scan
		}
	}

	args, partial := splitArgs(text[start:])

	if len(args) == 0 || (len(args) == 1 && partial) {
		return segment{command: true}
	}

	arg := len(args) - 1
	if partial {
		arg--
	}

	return segment{name: args[0], arg: arg}
}

// splitArgs splits s on whitespace outside parentheses. partial reports
// whether the last argument is still being typed.
func splitArgs(s string) (args []string, partial bool) {
	var b strings.Builder

	depth := 0

	for _, r := range s {
		switch {
		case r == '(':
			depth++

		case r == ')' && depth > 0:
			depth--

		case unicode.IsSpace(r) && depth == 0:
			if b.Len() > 0 {
				args = append(args, b.String())
				b.Reset()
			}

			continue
		}

		b.WriteRune(r)
	}

	if b.Len() > 0 {
		args = append(args, b.String())
		partial = true
	}

	return args, partial
}

// usageParams returns the parameter placeholders of a usage string such as
// "set <cvar id> <value>". Placeholders in angle brackets may contain spaces.
func usageParams(usage string) []string {
	var (
		params []string
		b      strings.Builder
		depth  int
	)

	flush := func() {
		if b.Len() > 0 {
			params = append(params, b.String())
			b.Reset()
		}
	}

	for _, r := range usage {
		switch r {
		case '<':
			depth++

		case '>':
			if depth > 0 {
				depth--
			}

		case ' ', '\t':
			if depth == 0 {
				flush()

				continue
			}
		}

		b.WriteRune(r)
	}

	flush()

	if len(params) == 0 {
		return nil
	}

	return params[1:]
}

func isVariadic(param string) bool {
	return strings.HasSuffix(param, "...") || strings.HasSuffix(param, "...>")
}

// isVarParam reports whether param names a console variable.
func isVarParam(param string) bool {
	return strings.HasPrefix(param, "<cvar")
}

// paramAt returns the placeholder for argument index arg, or "" if the
// command takes no such argument.
func paramAt(params []string, arg int) string {
	switch {
	case arg < 0 || len(params) == 0:
		return ""

	case arg < len(params):
		return params[arg]

	case isVariadic(params[len(params)-1]):
		return params[len(params)-1]
	}

	return ""
}

// renderSignatureHint renders the usage string with the current parameter
// highlighted.
func renderSignatureHint(usage string, currentArgIdx int) string {
	if usage == "" {
		return ""
	}

	name, _, _ := strings.Cut(usage, " ")
	params := usageParams(usage)

	var b strings.Builder
	b.WriteString(signatureNameStyle.Render(name))

	for i, param := range params {
		b.WriteString(signatureStyle.Render(" "))

		// For variadic parameters, highlight if we're at or beyond that index
		if (isVariadic(param) && currentArgIdx >= i) || currentArgIdx == i {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	return b.String()
}
