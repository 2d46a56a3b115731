package grammar

import "github.com/ghettovoice/abnf"

// Rules of the URI template syntax from draft-gregorio-uritemplate-07 Section 2.
// Variable names start with a letter, an underscore or a pct-encoded octet,
// digits are not allowed.
// The template rule itself is not built as an operator: [ScanTemplate] applies
// its alternatives position by position.
//
//	template      = *( expression / pct-encoded / literal-char )
//	expression    = "{" [ operator ] variable-list "}"
//	operator      = "+" / "#" / "." / "/" / ";" / "?" / "&"
//	variable-list = varspec *( "," varspec )
//	varspec       = varname [ explode ] [ prefix ]
//	varname       = varchar *( varchar / "." )
//	varchar       = ALPHA / "_" / pct-encoded
//	explode       = "*"
//	prefix        = ":" max-length
//	max-length    = 1*DIGIT
//	literal-char  = any character except CTL, SP, DQUOTE, "'", "%", "<", ">",
//	                "\", "^", "`", "{", "|", "}" and C1 controls
var (
	alpha = abnf.AltFirst(
		"ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)

	digit = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})

	hexdig = abnf.AltFirst(
		"HEXDIG",
		digit,
		abnf.Range("%x41-46", []byte{0x41}, []byte{0x46}),
		abnf.Range("%x61-66", []byte{0x61}, []byte{0x66}),
	)

	pctEncoded = abnf.Concat(
		"pct-encoded",
		abnf.Literal("\"%\"", []byte{0x25}),
		hexdig,
		hexdig,
	)

	utf8Tail = abnf.Range("%x80-BF", []byte{0x80}, []byte{0xBF})

	literalChar = abnf.AltFirst(
		"literal-char",
		abnf.Literal("%x21", []byte{0x21}),
		abnf.Range("%x23-24", []byte{0x23}, []byte{0x24}),
		abnf.Literal("%x26", []byte{0x26}),
		abnf.Range("%x28-3B", []byte{0x28}, []byte{0x3B}),
		abnf.Literal("%x3D", []byte{0x3D}),
		abnf.Range("%x3F-5B", []byte{0x3F}, []byte{0x5B}),
		abnf.Literal("%x5D", []byte{0x5D}),
		abnf.Literal("%x5F", []byte{0x5F}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
		abnf.Literal("%x7E", []byte{0x7E}),
		// UTF-8 encoded non-ASCII characters, C1 controls (U+0080-U+009F) excluded
		abnf.Concat("%xC2 %xA0-BF", abnf.Literal("%xC2", []byte{0xC2}), abnf.Range("%xA0-BF", []byte{0xA0}, []byte{0xBF})),
		abnf.Concat("%xC3-DF UTF8-tail", abnf.Range("%xC3-DF", []byte{0xC3}, []byte{0xDF}), utf8Tail),
		abnf.Concat("%xE0-EF 2UTF8-tail", abnf.Range("%xE0-EF", []byte{0xE0}, []byte{0xEF}), utf8Tail, utf8Tail),
		abnf.Concat("%xF0-F4 3UTF8-tail", abnf.Range("%xF0-F4", []byte{0xF0}, []byte{0xF4}), utf8Tail, utf8Tail, utf8Tail),
	)

	operator = abnf.AltFirst(
		"operator",
		abnf.Literal("\"+\"", []byte("+")),
		abnf.Literal("\"#\"", []byte("#")),
		abnf.Literal("\".\"", []byte(".")),
		abnf.Literal("\"/\"", []byte("/")),
		abnf.Literal("\";\"", []byte(";")),
		abnf.Literal("\"?\"", []byte("?")),
		abnf.Literal("\"&\"", []byte("&")),
	)

	varchar = abnf.AltFirst(
		"varchar",
		alpha,
		abnf.Literal("\"_\"", []byte("_")),
		pctEncoded,
	)

	varname = abnf.Concat(
		"varname",
		varchar,
		abnf.Repeat0Inf("*( varchar / \".\" )", abnf.AltFirst(
			"varchar / \".\"",
			varchar,
			abnf.Literal("\".\"", []byte(".")),
		)),
	)

	varspec = abnf.Concat(
		"varspec",
		varname,
		abnf.Optional("[ explode ]", abnf.Literal("explode", []byte("*"))),
		abnf.Optional("[ prefix ]", abnf.Concat(
			"prefix",
			abnf.Literal("\":\"", []byte(":")),
			abnf.Repeat1Inf("max-length", digit),
		)),
	)

	variableList = abnf.Concat(
		"variable-list",
		varspec,
		abnf.Repeat0Inf("*( \",\" varspec )", abnf.Concat(
			"\",\" varspec",
			abnf.Literal("\",\"", []byte(",")),
			varspec,
		)),
	)

	expression = abnf.Concat(
		"expression",
		abnf.Literal("\"{\"", []byte("{")),
		abnf.Optional("[ operator ]", operator),
		variableList,
		abnf.Literal("\"}\"", []byte("}")),
	)

	literalUnit = abnf.AltFirst(
		"pct-encoded / literal-char",
		pctEncoded,
		literalChar,
	)
)
