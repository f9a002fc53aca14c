package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenExtractor pulls a candidate token out of the request.
type TokenExtractor func(c *fiber.Ctx) (string, error)

// TokenExtractors parses a lookup definition into extractor functions.
// The grammar is "source:name" entries separated by commas, e.g.
// "cookie:accessToken" or "header:Authorization". Deployments pick one
// source; listing several means first match wins.
func TokenExtractors(tokenLookup, authScheme string) []TokenExtractor {
	extractors := make([]TokenExtractor, 0)

	if authScheme == "" {
		authScheme = "Bearer"
	}

	for _, rootPart := range strings.Split(tokenLookup, ",") {
		parts := strings.SplitN(strings.TrimSpace(rootPart), ":", 2)
		if len(parts) != 2 {
			continue
		}

		source := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])

		switch source {
		case "header":
			extractors = append(extractors, tokenFromHeader(name, authScheme))
		case "cookie":
			extractors = append(extractors, tokenFromCookie(name))
		case "query":
			extractors = append(extractors, tokenFromQuery(name))
		}
	}

	return extractors
}

// TokenFromRequest runs the extractors for the given lookup and returns
// the first candidate token, or ErrTokenMissing when none yields one.
func TokenFromRequest(c *fiber.Ctx, tokenLookup, authScheme string) (string, error) {
	for _, extractor := range TokenExtractors(tokenLookup, authScheme) {
		if raw, err := extractor(c); raw != "" && err == nil {
			return raw, nil
		}
	}
	return "", ErrTokenMissing
}

// tokenFromHeader returns a function that extracts token from the request header.
func tokenFromHeader(header, authScheme string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		a := c.Get(header)
		l := len(authScheme)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrTokenMissing
	}
}

// tokenFromCookie returns a function that extracts token from the named cookie.
func tokenFromCookie(name string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrTokenMissing
		}
		return token, nil
	}
}

// tokenFromQuery returns a function that extracts token from the query string.
func tokenFromQuery(param string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Query(param)
		if token == "" {
			return "", ErrTokenMissing
		}
		return token, nil
	}
}
