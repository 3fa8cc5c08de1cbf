// Package formula implements the calculated-field expression language:
// arithmetic over sibling field names. Field identifiers are matched as
// whole tokens, never by substring substitution, so a field named "qty"
// can never corrupt a reference to "quantity".
package formula

// tokenType identifies the kind of lexical token.
type tokenType int

const (
	tokenEOF tokenType = iota
	tokenIdent
	tokenNumber
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
	tokenInvalid
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenIdent:
		return "identifier"
	case tokenNumber:
		return "number"
	case tokenPlus:
		return "+"
	case tokenMinus:
		return "-"
	case tokenStar:
		return "*"
	case tokenSlash:
		return "/"
	case tokenLParen:
		return "("
	case tokenRParen:
		return ")"
	default:
		return "invalid"
	}
}

// token is a single lexical token in a formula.
type token struct {
	Type    tokenType
	Literal string
	Pos     int // byte offset in source
}
