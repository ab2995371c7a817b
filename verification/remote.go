package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
	"github.com/jrsteele09/campusmate/users"
)

const verifyPath = "/verify"

// RemoteVerifier asks a GitHub profile analysis service to verify a username.
// Request: POST {baseURL}/verify {"username": "...", "role": "..."}.
// Response: a Payload document, 404 when the profile does not exist.
type RemoteVerifier struct {
	baseURL string
	client  *http.Client
}

var _ Verifier = (*RemoteVerifier)(nil)

type verifyRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewRemoteVerifier builds a verifier; a non-empty token is sent as a bearer credential
func NewRemoteVerifier(baseURL, token string, timeout time.Duration) *RemoteVerifier {
	client := &http.Client{}
	if token != "" {
		client = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	client.Timeout = timeout
	return &RemoteVerifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, username string, role users.Role) (Payload, error) {
	username, err := NormaliseUsername(username)
	if err != nil {
		return Payload{}, err
	}

	body, err := json.Marshal(verifyRequest{Username: username, Role: role.String()})
	if err != nil {
		return Payload{}, fmt.Errorf("[RemoteVerifier] marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+verifyPath, bytes.NewReader(body))
	if err != nil {
		return Payload{}, fmt.Errorf("[RemoteVerifier] build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		log.Err(err).Str("username", username).Msg("Verification provider request failed")
		return Payload{}, apperrors.Wrapf(apperrors.ErrVerificationUnavailable, "verify %s: %v", username, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Payload{}, apperrors.Wrapf(apperrors.ErrProfileNotFound, "verify %s", username)
	case resp.StatusCode == http.StatusBadRequest:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Payload{}, apperrors.Invalidf("%s", strings.TrimSpace(string(msg)))
	case resp.StatusCode != http.StatusOK:
		return Payload{}, apperrors.Wrapf(apperrors.ErrVerificationUnavailable, "verify %s: provider returned %d", username, resp.StatusCode)
	}

	p, err := DecodePayload(resp.Body)
	if err != nil {
		return Payload{}, err
	}
	if !strings.EqualFold(p.Username, username) {
		return Payload{}, apperrors.Wrapf(apperrors.ErrVerificationUnavailable, "provider answered for %q, asked for %q", p.Username, username)
	}
	return p, nil
}
