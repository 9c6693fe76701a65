package models

// TOON text format constants. These are part of the public contract: the
// encoder emits exactly these literals and the decoder recognizes them
// case-sensitively.
const (
	NullLiteral  = "null"
	TrueLiteral  = "yes"
	FalseLiteral = "no"

	ItemMarker   = "-"
	KeySeparator = ":"

	EmptyArrayLiteral  = "[]"
	EmptyObjectLiteral = "{}"

	// IndentUnit is one level of indentation.
	IndentUnit = "  "
)
