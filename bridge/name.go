package bridge

import (
	"regexp"
	"strings"
)

var localSeparator = regexp.MustCompile(`_([a-z])`)

// Name is a method or property name in the local (snake_case) convention.
type Name string

// Remote returns the camelCase form used by the remote runtime.
func (n Name) Remote() string { return ToRemote(string(n)) }

// Local returns the snake_case form.
func (n Name) Local() string { return ToLocal(string(n)) }

func (n Name) String() string { return string(n) }

// ToRemote replaces every underscore followed by a lowercase letter with the
// uppercased letter. Everything else is left untouched, so applying it to its
// own output is a no-op.
func ToRemote(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}
	return localSeparator.ReplaceAllStringFunc(name, func(match string) string {
		return strings.ToUpper(match[1:])
	})
}

// ToLocal lowercases every ASCII uppercase letter and prefixes it with an
// underscore unless it starts the name. Names with consecutive uppercase
// letters (HTTPServer) do not round-trip through ToRemote.
func ToLocal(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
