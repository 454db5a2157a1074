package model

import (
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/encoding/unicode"
)

// Document is one fetched resource. It is created per request and is
// not modified after construction.
type Document struct {
	// URL is the resource the body was fetched from.
	URL string `json:"url"`

	// Body is the raw response body.
	Body []byte `json:"-"`

	// Text is Body decoded as UTF-8 with any byte order mark removed.
	Text string `json:"-"`

	// Hash is the BLAKE2b-256 digest of Body, hex encoded.
	// Used to detect unchanged documents in the cache.
	Hash string `json:"hash"`

	// FetchedAt is when the body was retrieved from the portal.
	FetchedAt time.Time `json:"fetched_at"`

	// FromCache reports whether the body was served by the local cache.
	FromCache bool `json:"from_cache"`
}

// NewDocument decodes body and returns a Document.
func NewDocument(url string, body []byte, fetchedAt time.Time) (*Document, error) {
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformedContent, url, err)
	}
	return &Document{
		URL:       url,
		Body:      body,
		Text:      string(text),
		Hash:      HashBody(body),
		FetchedAt: fetchedAt,
	}, nil
}

// HashBody returns the hex BLAKE2b-256 digest of a response body.
func HashBody(body []byte) string {
	sum := blake2b.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// Empty reports whether the decoded document has no content at all.
func (d *Document) Empty() bool {
	return d == nil || d.Text == ""
}
