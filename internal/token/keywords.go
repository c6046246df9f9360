package token

var keywords = map[string]bool{
	"interface": true,
	"type":      true,
	"enum":      true,
	"export":    true,
	"extends":   true,
	"const":     true,
	"readonly":  true,
	"import":    true,
	"from":      true,
	"as":        true,
	"declare":   true,
	"namespace": true,
	"module":    true,
}

var primitives = map[string]bool{
	"string":    true,
	"number":    true,
	"boolean":   true,
	"null":      true,
	"undefined": true,
	"any":       true,
	"unknown":   true,
	"never":     true,
	"void":      true,
	"object":    true,
	"bigint":    true,
	"true":      true,
	"false":     true,
}

// ClassifyWord returns the token kind for a scanned word: Keyword for the
// declaration keywords, Primitive for built-in type names, Ident otherwise.
// Matching is case-sensitive; only lowercase forms are recognized.
func ClassifyWord(word string) Kind {
	if keywords[word] {
		return Keyword
	}
	if primitives[word] {
		return Primitive
	}
	return Ident
}

// IsPunctByte reports whether b is one of the recognized single-character
// punctuation tokens.
func IsPunctByte(b byte) bool {
	switch b {
	case '{', '}', '(', ')', '[', ']', ':', ';', ',', '?', '|', '&', '=', '<', '>', '.', '*':
		return true
	default:
		return false
	}
}
