package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/noclip/console"
)

// metaCommands are handled by the REPL itself unless the console binds a
// command with the same name.
var metaCommands = []string{"clear", "edit", "exit", "quit"}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Words are delimited by whitespace, parentheses
// and the command delimiter.
// Returns an empty word when the cursor sits on a boundary.
func wordBounds(input string, cursor int, delim rune) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	isBoundary := func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')' || r == delim
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// commandCandidates returns the names completing a command: every bound
// command plus the REPL's meta commands.
func commandCandidates(c *console.Console) []string {
	names := c.CommandNames()

	for _, meta := range metaCommands {
		if !slices.Contains(names, meta) {
			names = append(names, meta)
		}
	}

	slices.Sort(names)

	return names
}

// argCandidates returns the names completing argument seg.arg of seg.name,
// or nil if the argument is not a variable name.
func argCandidates(c *console.Console, seg segment) []string {
	usage, ok := c.Usage(seg.name)
	if !ok {
		return nil
	}

	if !isVarParam(paramAt(usageParams(usage), seg.arg)) {
		return nil
	}

	return c.VarNames()
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty command word yields no matches so the hint line stays
// visible. An empty variable argument lists every variable.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()
	delim := m.console.Delimiter()

	word, ws, we := wordBounds(input, cursor, delim)
	wordStart, wordEnd = ws, we

	seg := commandAt(input, cursor, delim)

	if seg.command {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = commandCandidates(m.console)
	} else {
		candidates = argCandidates(m.console, seg)

		if word == "" && len(candidates) > 0 {
			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}
