package portal

import (
	"net/url"
	"strings"
)

const tokenParam = "token"

// MagicLink appends the token query parameter to the dashboard URL base.
func MagicLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(tokenParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// TokenFromLink extracts the token from a magic link. Input that is neither
// a URL nor a query string is taken as a bare token.
func TokenFromLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "?=/:") {
		return raw
	}

	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	} else if strings.Contains(raw, "://") {
		return ""
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(values.Get(tokenParam))
}
