package catalog

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugBase leaves room for a numeric suffix inside the slug columns.
const maxSlugBase = 100

// Slugify folds accents, lowercases and joins words with "-". Characters
// with no ASCII form are dropped. An empty result falls back to fallback.
func Slugify(name, fallback string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			dash = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugBase {
		slug = slug[:maxSlugBase]
	}
	slug = strings.Trim(slug, "-_")
	if slug == "" {
		return fallback
	}
	return slug
}

// SlugExists checks storage for a slug within the tenant scope.
type SlugExists func(ctx context.Context, slug string) (bool, error)

func slugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// UniqueSlug returns the first free candidate among base, base-1, base-2...
// starting at suffix start (0 means the bare base). The suffix used is
// returned so a caller can resume after a lost insert race.
func UniqueSlug(ctx context.Context, base string, start int, exists SlugExists) (string, int, error) {
	for n := start; ; n++ {
		candidate := slugCandidate(base, n)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", 0, err
		}
		if !taken {
			return candidate, n, nil
		}
	}
}
