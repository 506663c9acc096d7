package mail

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

// ConfirmationSubject is the subject of verification emails.
const ConfirmationSubject = "Confirm your email"

// ConfirmationLink joins the public base URL with the confirmation route.
// baseURL is expected to end with a slash, as request base URLs do.
func ConfirmationLink(baseURL string, token string) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + "api/auth/confirmed_email/" + token
}

// Render writes component to a string.
func Render(ctx context.Context, component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
