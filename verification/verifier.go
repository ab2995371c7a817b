package verification

import (
	"context"
	"strings"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/users"
)

// Verifier queries an identity provider for a username and the role it is signing up as
type Verifier interface {
	Verify(ctx context.Context, username string, role users.Role) (Payload, error)
}

// NormaliseUsername trims the input and rejects blanks before any provider call
func NormaliseUsername(username string) (string, error) {
	username = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(username), "@"))
	if username == "" {
		return "", apperrors.Invalidf("please enter your GitHub username")
	}
	return username, nil
}
