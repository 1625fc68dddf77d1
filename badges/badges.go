// Package badges publishes badge contents to a github gist, where shields.io style
// endpoints read them from.
package badges

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v52/github"
)

// ErrUnexpectedStatus is returned when github answers with anything but 200.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError carries the status code github answered with.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Got %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Gist identifies a file inside a gist.
type Gist struct {
	ID   string
	File string
}

// Publisher writes badge contents to gists.
type Publisher struct {
	client *github.Client
}

// New creates a publisher authenticating every request with token.
func New(token string, opts ...Option) (*Publisher, error) {
	httpclient := &http.Client{
		Transport: &tokenTransport{token: token, base: http.DefaultTransport},
	}

	client := github.NewClient(httpclient)

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return &Publisher{client: client}, nil
}

// Publish replaces the contents of the gist file; the other files of the gist are untouched.
func (p *Publisher) Publish(ctx context.Context, gist Gist, content string) error {
	edit := &github.Gist{
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(gist.File): {Content: github.String(content)},
		},
	}

	_, resp, err := p.client.Gists.Edit(ctx, gist.ID, edit)
	if resp != nil && resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	if err != nil {
		return fmt.Errorf("failed to update gist %s: %w", gist.ID, err)
	}

	return nil
}

type Option func(c *github.Client) error

// WithBaseURL points the client at a different api endpoint, e.g. a github enterprise
// instance or a test server.
func WithBaseURL(base string) Option {
	return func(c *github.Client) error {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		parsed, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("invalid base url %s: %w", base, err)
		}

		c.BaseURL = parsed
		return nil
	}
}

// tokenTransport authenticates requests with a personal access token.
type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "token "+t.token)
	return t.base.RoundTrip(req)
}
