package query

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-query/internal/expr"
)

// LikeEscapeChar is the escape character of patterns built by lowering. When a
// literal pattern needed escaping, the Like node carries it as a third placeholder
// child: Like(field, pattern, escape).
const LikeEscapeChar = `\`

var likeEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"%", "\\%",
	"_", "\\_",
)

func escapeLikePattern(value string) string {
	return likeEscaper.Replace(value)
}

// buildLikePattern returns the operands after the target of a Like node. A literal
// value is bound as a single parameter; if it contains wildcard or escape
// characters they are escaped and the escape character follows as its own
// placeholder. Any other operand is concatenated with the wildcards so its value
// still travels as data.
func buildLikePattern(function string, value ASTNode, lowered *expr.Node, prefixWildcard, suffixWildcard bool) ([]*expr.Node, error) {
	if lit, ok := value.(*Literal); ok {
		if lit.Kind == LiteralNull {
			return nil, loweringError(ErrInvalidArgument, function, "pattern argument must not be null")
		}
		raw := fmt.Sprint(lit.Value)
		pattern := escapeLikePattern(raw)
		escaped := pattern != raw
		if prefixWildcard {
			pattern = "%" + pattern
		}
		if suffixWildcard {
			pattern = pattern + "%"
		}
		if !escaped {
			return []*expr.Node{expr.Placeholder(pattern)}, nil
		}
		return []*expr.Node{expr.Placeholder(pattern), expr.Placeholder(LikeEscapeChar)}, nil
	}

	parts := make([]*expr.Node, 0, 3)
	if prefixWildcard {
		parts = append(parts, expr.Placeholder("%"))
	}
	parts = append(parts, lowered)
	if suffixWildcard {
		parts = append(parts, expr.Placeholder("%"))
	}
	return []*expr.Node{expr.Op(expr.OpConcat, parts...)}, nil
}
