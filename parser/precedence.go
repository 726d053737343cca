package parser

import "github.com/leverr-lang/leverr/internal/token"

// bindingPower is a left/right binding-power pair for an infix operator.
type bindingPower struct {
	left  int
	right int
}

// infixBindingPowers is the binding-power table of language spec §4.2.
// Postfix unwrap (?) and field access (.) are handled separately in
// parseExpr since they have no ordinary right-hand operand parse.
var infixBindingPowers = map[token.Type]bindingPower{
	token.PIPE:     {5, 6},
	token.OR:       {10, 11},
	token.AND:      {20, 21},
	token.EQ:       {30, 31},
	token.NOT_EQ:   {30, 31},
	token.LT:       {40, 41},
	token.GT:       {40, 41},
	token.LT_EQ:    {40, 41},
	token.GT_EQ:    {40, 41},
	token.PLUSPLUS: {50, 51},
	token.PLUS:     {60, 61},
	token.MINUS:    {60, 61},
	token.STAR:     {70, 71},
	token.SLASH:    {70, 71},
	token.PERCENT:  {70, 71},
}

const (
	unaryRightBP = 80

	questionLeftBP = 90

	dotLeftBP  = 95
	dotRightBP = 96

	// lambdaBodyMinBP is the critical disambiguation of §4.2: a lambda
	// body is parsed at this minimum binding power (above the pipe's 5/6)
	// so a trailing pipe stays at the enclosing expression's level.
	lambdaBodyMinBP = 6
)
