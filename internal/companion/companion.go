// Package companion resolves the export lists of libraries the framework
// auto-imports alongside its own composables (nitro and h3).
//
// Discovery is best-effort: a Resolver returns an error when a list cannot be
// produced and the caller treats that library as contributing nothing.
package companion

import (
	"context"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrUnknownLibrary is returned when a resolver has no source for a library
var ErrUnknownLibrary = errors.New("unknown companion library")

// Library describes a companion library and where its exports live
type Library struct {
	Group         string // Origin group the names are filed under ("nitro", "h3")
	Package       string // npm package name
	Subpath       string // package.json "exports" key, "." for the package root
	DropTypeNames bool   // Drop names starting with an upper-case letter
}

// Known companion libraries, in the order their groups are populated
var (
	Nitro = Library{Group: "nitro", Package: "nitropack", Subpath: "./runtime"}
	H3    = Library{Group: "h3", Package: "h3", Subpath: ".", DropTypeNames: true}
)

// Libraries returns the known companion libraries in population order
func Libraries() []Library {
	return []Library{Nitro, H3}
}

// Resolver produces the plain export names of a companion library
type Resolver interface {
	Resolve(ctx context.Context, lib Library) ([]string, error)
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(ctx context.Context, lib Library) ([]string, error)

// Resolve calls f(ctx, lib)
func (f ResolverFunc) Resolve(ctx context.Context, lib Library) ([]string, error) {
	return f(ctx, lib)
}

// Chain tries each resolver in order and returns the first non-empty result.
// If every resolver fails, the errors are joined.
type Chain []Resolver

// Resolve implements Resolver
func (c Chain) Resolve(ctx context.Context, lib Library) ([]string, error) {
	var errs []error
	for _, r := range c {
		names, err := r.Resolve(ctx, lib)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(names) > 0 {
			return names, nil
		}
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return nil, fmt.Errorf("resolve %s: %w", lib.Package, errors.Join(errs...))
}

// Filter applies the library's name policy, keeping order
func Filter(lib Library, names []string) []string {
	if !lib.DropTypeNames {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !looksLikeType(n) {
			out = append(out, n)
		}
	}
	return out
}

// looksLikeType reports whether name starts with an upper-case letter, the
// convention for classes and type-only exports.
func looksLikeType(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
