package replui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nilsdev/wisp/lexer"
	"github.com/nilsdev/wisp/token"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676"))

	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF79C6")).
			Bold(true)

	identifierStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))

	literalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	operatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	delimiterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BD93F9"))

	stringStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))
)

func isKeyword(t token.Token) bool {
	switch t.Type {
	case token.FUNCTION, token.LET, token.TRUE, token.FALSE, token.IF, token.ELSE, token.RETURN:
		return true
	}
	return false
}

func isOperator(t token.Token) bool {
	switch t.Type {
	case token.ASSIGN, token.PLUS, token.MINUS, token.BANG, token.ASTERISK, token.SLASH,
		token.LT, token.GT, token.EQ, token.NOT_EQ:
		return true
	}
	return false
}

func isDelimiter(t token.Token) bool {
	switch t.Type {
	case token.COMMA, token.COLON, token.SEMICOLON, token.LPAREN, token.RPAREN,
		token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET:
		return true
	}
	return false
}

// highlightCode renders source as a single-line, token-colored string. Unlike the
// pretty-printer this is grounded on, it does not reflow or reindent input: it
// re-emits the line's tokens in order, separated by single spaces and tinted by
// token kind. The original spacing and any // comments are not kept.
func highlightCode(src string, noColor bool) string {
	l := lexer.New(src)
	var s strings.Builder

	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}

		if noColor {
			s.WriteString(tok.Literal)
			s.WriteString(" ")
			continue
		}

		switch {
		case isKeyword(tok):
			s.WriteString(keywordStyle.Render(tok.Literal))
		case tok.Type == token.IDENT:
			s.WriteString(identifierStyle.Render(tok.Literal))
		case tok.Type == token.INT:
			s.WriteString(literalStyle.Render(tok.Literal))
		case tok.Type == token.STRING:
			s.WriteString(stringStyle.Render("\"" + tok.Literal + "\""))
		case isOperator(tok):
			s.WriteString(operatorStyle.Render(tok.Literal))
		case isDelimiter(tok):
			s.WriteString(delimiterStyle.Render(tok.Literal))
		default:
			s.WriteString(tok.Literal)
		}
		s.WriteString(" ")
	}

	return strings.TrimRight(s.String(), " ")
}

// isBalanced reports whether brackets, braces, and parentheses are balanced in input.
func isBalanced(input string) bool {
	var stack []rune

	for _, char := range input {
		switch char {
		case '(', '{', '[':
			stack = append(stack, char)
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				return false
			}
			stack = stack[:len(stack)-1]
		case '}':
			if len(stack) == 0 || stack[len(stack)-1] != '{' {
				return false
			}
			stack = stack[:len(stack)-1]
		case ']':
			if len(stack) == 0 || stack[len(stack)-1] != '[' {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}

	return len(stack) == 0
}
