// Package cdn signs direct-to-Cloudinary video uploads and destroys
// videos when a movie is removed. Like s3store, the server only hands out
// credentials; the bytes flow straight from the client to the CDN.
package cdn

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Config holds the CDN account settings loaded at startup.
type Config struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
}

// Signer signs upload parameter sets and destroys uploaded videos.
// Now is overridable so signature tests can pin the timestamp; nil means
// time.Now.
type Signer struct {
	cfg    Config
	client *cloudinary.Cloudinary
	Now    func() time.Time
}

// New builds a Signer bound to one CDN account.
func New(cfg Config) (*Signer, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cdn client: %w", err)
	}
	return &Signer{cfg: cfg, client: client}, nil
}

// UploadCredentials is the parameter set a client presents to the CDN's
// upload endpoint. Field names follow the CDN's API.
type UploadCredentials struct {
	Signature    string `json:"signature"`
	Timestamp    int64  `json:"timestamp"`
	CloudName    string `json:"cloud_name"`
	APIKey       string `json:"api_key"`
	Folder       string `json:"folder"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
}

// SignUpload signs {timestamp, folder, public_id} with the API secret so
// the client can upload one video under the movie's id.
func (s *Signer) SignUpload(publicID string) (UploadCredentials, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ts := now().Unix()

	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(ts, 10))
	params.Set("folder", s.cfg.UploadFolder)
	params.Set("public_id", publicID)

	signature, err := api.SignParameters(params, s.cfg.APISecret)
	if err != nil {
		return UploadCredentials{}, fmt.Errorf("sign upload params: %w", err)
	}

	return UploadCredentials{
		Signature:    signature,
		Timestamp:    ts,
		CloudName:    s.cfg.CloudName,
		APIKey:       s.cfg.APIKey,
		Folder:       s.cfg.UploadFolder,
		PublicID:     publicID,
		ResourceType: "video",
	}, nil
}

// PublicIDFromURL recovers the public id from a delivery URL: everything
// after /upload/v<version>/ with the file extension dropped.
func PublicIDFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse delivery url: %w", err)
	}

	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	// Skip "upload" and the version segment that follows it.
	if uploadIdx < 0 || uploadIdx+2 >= len(parts) {
		return "", fmt.Errorf("delivery url %q has no public id", raw)
	}

	publicID := strings.Join(parts[uploadIdx+2:], "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" {
		return "", fmt.Errorf("delivery url %q has no public id", raw)
	}
	return publicID, nil
}

// Destroy deletes the video behind a delivery URL. "not found" counts as
// deleted so retried cleanups stay idempotent.
func (s *Signer) Destroy(ctx context.Context, publicURL string) error {
	publicID, err := PublicIDFromURL(publicURL)
	if err != nil {
		return err
	}

	res, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "video",
	})
	if err != nil {
		return fmt.Errorf("cdn destroy: %w", err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cdn destroy %q: %s", publicID, res.Result)
	}
	return nil
}
