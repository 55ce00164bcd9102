package env

// reserved is the closed set of names CreateVar rejects: the language
// keywords only. No module names (such as "string" or "number") are reserved.
var reserved = map[string]bool{
	"let": true, "return": true, "if": true, "else": true,
	"for": true, "while": true, "fn": true, "use": true,
	"true": true, "false": true, "none": true, "in": true,
}

// IsReserved reports whether name is a reserved keyword that CreateVar must
// refuse to bind.
func IsReserved(name string) bool {
	return reserved[name]
}
