package langcodes

import "golang.org/x/text/language"

// Resolver maps a fine-grained language code to its two-letter equivalent.
// Implementations report ok=false for codes they cannot resolve; they never
// return errors, since unresolvable tags are an expected, non-fatal case.
type Resolver interface {
	Resolve(tag string) (code string, ok bool)
}

// ISOResolver resolves ISO 639-3 codes through the language subtag registry
// bundled with golang.org/x/text. Parsing canonicalizes a base tag to its
// shortest form, so three-letter codes that have a two-letter equivalent
// (e.g. "eng") come back as that equivalent ("en"). Codes whose canonical
// form stays three letters have no two-letter equivalent and are unresolved.
type ISOResolver struct{}

func (ISOResolver) Resolve(tag string) (string, bool) {
	base, err := language.ParseBase(tag)
	if err != nil {
		return "", false
	}
	code := base.String()
	if len(code) != 2 {
		return "", false
	}
	return code, true
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(tag string) (string, bool)

func (f ResolverFunc) Resolve(tag string) (string, bool) { return f(tag) }
