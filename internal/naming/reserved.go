package naming

// reserved is the set of target-language keywords that cannot be used as
// bare identifiers. The structured-source model (spec §4.8) and its
// vocabulary (indirect enum, Codable, associated values, do/catch) follow
// the conventions of Swift-family target languages, so the reserved set
// mirrors Swift's keyword list.
var reserved = map[string]bool{
	"associatedtype": true, "class": true, "deinit": true, "enum": true,
	"extension": true, "fileprivate": true, "func": true, "import": true,
	"init": true, "inout": true, "internal": true, "let": true, "open": true,
	"operator": true, "private": true, "precedencegroup": true,
	"protocol": true, "public": true, "rethrows": true, "static": true,
	"struct": true, "subscript": true, "typealias": true, "var": true,
	"break": true, "case": true, "catch": true, "continue": true,
	"default": true, "defer": true, "do": true, "else": true,
	"fallthrough": true, "for": true, "guard": true, "if": true,
	"in": true, "repeat": true, "return": true, "throw": true,
	"switch": true, "where": true, "while": true,
	"as": true, "false": true, "is": true, "nil": true, "self": true,
	"Self": true, "super": true, "throws": true, "true": true, "try": true,
	"Any": true, "Type": true, "Protocol": true,
}

// IsReserved reports whether name is a reserved keyword in the target
// language.
func IsReserved(name string) bool {
	return reserved[name]
}
