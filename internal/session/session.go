// Package session carries per-request state (the authenticated user and their
// theme preferences) explicitly through context, instead of ambient globals.
package session

import "context"

// Theme holds the per-user journal customization settings. The JSON field
// names match the document stored in the user's namespace.
type Theme struct {
	PrimaryColor    string `json:"primary_color"`
	BackgroundColor string `json:"bg_color"`
	FontChoice      string `json:"font_choice"`
	Emoji           string `json:"emoji"`
	ShowHeaderImage bool   `json:"show_header_img"`
}

// DefaultTheme returns the theme applied before a user saves any
// customization.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:    "#B86B36",
		BackgroundColor: "#FFF8F1",
		FontChoice:      "Serif (Georgia)",
		Emoji:           "🍂",
		ShowHeaderImage: true,
	}
}

// Context is the per-interaction session state constructed once per request
// and passed down explicitly.
type Context struct {
	Username string
	Theme    Theme
}

type ctxKey struct{}

// NewContext returns a copy of parent carrying sc.
func NewContext(parent context.Context, sc Context) context.Context {
	return context.WithValue(parent, ctxKey{}, sc)
}

// FromContext extracts the session state stored by NewContext.
func FromContext(ctx context.Context) (Context, bool) {
	sc, ok := ctx.Value(ctxKey{}).(Context)
	return sc, ok
}
