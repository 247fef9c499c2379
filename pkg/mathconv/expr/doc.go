/*
Package expr parses and evaluates mathconv formulas.

# Overview

A formula is a short expression over up to ten positional inputs. Source
text is tokenized by the lexer, parsed into an immutable AST and evaluated
against an Env holding the bound inputs and a culture. Parsed programs are
kept in a Cache so a formula that is evaluated repeatedly is parsed once.

# Expression Syntax

Lowest to highest precedence:

	expr           := ternary
	ternary        := coalesce ('?' ternary ':' ternary)?
	coalesce       := logic_or ('??' coalesce)?
	logic_or       := logic_and ('||' logic_and)*
	logic_and      := equality ('&&' equality)*
	equality       := relational (('==' | '!=') relational)*
	relational     := additive (('<' | '<=' | '>' | '>=') additive)*
	additive       := multiplicative (('+' | '-') multiplicative)*
	multiplicative := unary (('*' | '/' | '%') unary)*
	unary          := ('!' | '-') unary | power
	power          := primary ('^' unary)?
	primary        := NUMBER | STRING | 'null' | 'true' | 'false'
	                | '[' DIGIT ']'
	                | IDENT ('(' (expr (';' expr)*)? ')')?
	                | '(' expr ')'

Strings are delimited by a backtick or a double quote and have no escapes.
Number literals always use '.' as the decimal point; the culture only
affects how strings are coerced to numbers at run time. Function arguments
are separated by ';'.

# Variables

Inputs bind positionally:

	x     slot 0        [0]
	y     slot 1        [1]
	z     slot 2        [2]
	Var3  slot 3        [3]
	...
	Var9  slot 9        [9]

# Evaluation

Operators are strict: both operands are evaluated first. The conditional
'?:' evaluates only the branch it takes, and '??' evaluates its right side
only when the left is null. Function arguments are passed as thunks; each
function decides which of them to force, and a thunk forced twice is
evaluated once.

Examples:

	x + y * 2
	Round(x; 2)
	x > 0 ? `positive` : `not positive`
	TryCatch(x / y; 0)
	IsNull(x; `n/a`)
*/
package expr
