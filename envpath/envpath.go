// Package envpath resolves install directories supplied as action inputs.
//
// An input like "$HOME/bin" has its leading variable reference substituted
// from the environment before separators are normalized. Only a reference at
// the very start of the string is recognized; "$RUNNER_TEMP/$HOME" keeps the
// second token verbatim.
package envpath

import (
	"regexp"
	"strings"
)

// Unset is substituted for variables that aren't present in the environment.
const Unset = "undefined"

// LookupFunc matches the signature of [os.LookupEnv].
type LookupFunc func(key string) (string, bool)

var leadingvar = regexp.MustCompile(`^\$[A-Z_a-z]+`)

// Resolve expands a leading variable reference and normalizes the result.
func Resolve(path string, lookup LookupFunc) string {
	return Normalize(Expand(path, lookup))
}

// Expand replaces a leading $NAME token with the value of NAME.
// Unset variables are replaced by [Unset] rather than an empty string.
func Expand(path string, lookup LookupFunc) string {
	return leadingvar.ReplaceAllStringFunc(path, func(token string) string {
		value, ok := lookup(strings.TrimPrefix(token, "$"))
		if !ok {
			return Unset
		}
		return value
	})
}

// Normalize collapses runs of forward and back slashes into a single forward
// slash and strips a trailing separator. Dot segments are kept as they are.
func Normalize(path string) string {
	if path == `\` || path == "/" {
		return "/"
	}

	if len(path) <= 1 {
		return path
	}

	// win32 namespaces (\\?\ and \\.\) keep their two leading slashes
	var prefix string
	if len(path) > 4 && path[3] == '\\' && strings.HasPrefix(path, `\\`) && (path[2] == '?' || path[2] == '.') {
		path = path[2:]
		prefix = "//"
	}

	segments := separators.Split(path, -1)
	if segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}

	return prefix + strings.Join(segments, "/")
}

var separators = regexp.MustCompile(`[/\\]+`)
