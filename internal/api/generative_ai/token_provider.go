package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// TokenProvider exchanges the configured credential for a bearer token.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// CredentialsTokenProvider serves tokens from a Google credential. Tokens are
// cached by the credential and refreshed before expiry.
type CredentialsTokenProvider struct {
	creds *auth.Credentials
}

// NewCredentialsTokenProvider loads a service account credential. source is
// either the JSON document itself or a path to it; when empty the
// application default credentials are used.
func NewCredentialsTokenProvider(source string) (*CredentialsTokenProvider, error) {
	opts := &credentials.DetectOptions{Scopes: []string{cloudPlatformScope}}
	source = strings.TrimSpace(source)
	switch {
	case strings.HasPrefix(source, "{"):
		opts.CredentialsJSON = []byte(source)
	case source != "":
		opts.CredentialsFile = source
	}

	creds, err := credentials.DetectDefault(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	return &CredentialsTokenProvider{creds: creds}, nil
}

func NewTokenProviderFromCredentials(creds *auth.Credentials) *CredentialsTokenProvider {
	return &CredentialsTokenProvider{creds: creds}
}

func (p *CredentialsTokenProvider) Token(ctx context.Context) (string, error) {
	tok, err := p.creds.Token(ctx)
	if err != nil {
		return "", err
	}
	if tok == nil || tok.Value == "" {
		return "", errors.New("empty access token")
	}
	return tok.Value, nil
}

func (p *CredentialsTokenProvider) Credentials() *auth.Credentials {
	return p.creds
}

// ProjectID reports the project the credential belongs to, if any.
func (p *CredentialsTokenProvider) ProjectID(ctx context.Context) string {
	id, err := p.creds.ProjectID(ctx)
	if err != nil {
		return ""
	}
	return id
}

// failingTokenProvider stands in when no credential could be loaded, so every
// generation reports the authentication failure.
type failingTokenProvider struct {
	err error
}

func (f failingTokenProvider) Token(context.Context) (string, error) {
	return "", f.err
}
