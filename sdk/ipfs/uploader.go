// Package ipfs uploads off-chain metadata documents through the IPFS HTTP RPC API.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/smartcontractkit/txbundle/sdk"
)

// ErrEmptyHash is returned when the node accepts the upload but returns no content hash.
var ErrEmptyHash = errors.New("ipfs node returned an empty hash")

const (
	addPath  = "/api/v0/add"
	fileName = "metadata.json"
	scheme   = "ipfs://"
)

var _ sdk.MetadataUploader = (*Uploader)(nil)

// Uploader adds JSON documents to an IPFS node and pins them.
type Uploader struct {
	client *resty.Client
}

// addResponse is the body returned by /api/v0/add.
type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// NewUploader creates an uploader for the node API at apiURL, e.g. http://127.0.0.1:5001.
// headers are sent with every request and typically carry credentials of a pinning service.
func NewUploader(apiURL string, headers map[string]string) *Uploader {
	return &Uploader{
		client: resty.New().
			SetBaseURL(strings.TrimRight(apiURL, "/")).
			SetHeaders(headers),
	}
}

// Upload serializes doc as JSON, adds it to IPFS and returns its ipfs:// reference.
func (u *Uploader) Upload(ctx context.Context, doc any) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var out addResponse
	resp, err := u.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"pin":         "true",
			"cid-version": "1",
		}).
		SetFileReader("file", fileName, bytes.NewReader(body)).
		SetResult(&out).
		Post(addPath)
	if err != nil {
		return "", fmt.Errorf("failed to call %s: %w", addPath, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%s returned %s: %s", addPath, resp.Status(), strings.TrimSpace(resp.String()))
	}
	if out.Hash == "" {
		return "", ErrEmptyHash
	}

	sdk.LoggerFrom(ctx).Debugf("uploaded metadata %s (%s bytes)", out.Hash, out.Size)

	return scheme + out.Hash, nil
}
