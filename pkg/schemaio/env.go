package schemaio

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches "${NAME}", "${NAME:-default}", and "$NAME", the
// same shell-style expansion the config loader applies to its YAML, plus
// a default-value arm the original doesn't need (the config loader never
// has to bake a fallback into a string).
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// ExpandEnvVars substitutes environment variable references in s. An
// unset "${NAME}"/"$NAME" with no default is left untouched, matching the
// config loader's "leave the literal text if unset" behaviour.
func ExpandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		braced, fallback, bare := groups[1], groups[2], groups[3]

		name := braced
		if name == "" {
			name = bare
		}

		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if fallback != "" {
			return strings.TrimPrefix(fallback, ":-")
		}
		return match
	})
}
