// Package storage issues time-limited signed URLs for exam PDFs held in
// Cloudinary. Objects live under a single bucket folder; delivery uses
// Cloudinary's token authentication so URLs expire server-side as well.
package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Bucket    string
}

// Service implements the signed URL provider interface using Cloudinary.
type Service struct {
	client    *cloudinary.Cloudinary
	cloudName string
	apiSecret string
	bucket    string
	logger    zerolog.Logger
	now       func() time.Time
}

// New constructs a Cloudinary-backed storage service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client:    cld,
		cloudName: cfg.CloudName,
		apiSecret: cfg.APISecret,
		bucket:    strings.Trim(cfg.Bucket, "/"),
		logger:    logger.With().Str("component", "storage").Logger(),
		now:       time.Now,
	}, nil
}

// Exists reports whether the object is present in the bucket.
func (s *Service) Exists(ctx context.Context, filePath string) (bool, error) {
	result, err := s.client.Admin.Asset(ctx, admin.AssetParams{PublicID: s.publicID(filePath)})
	if err != nil {
		return false, fmt.Errorf("failed to query asset: %w", err)
	}

	if result.Error.Message != "" {
		if strings.Contains(strings.ToLower(result.Error.Message), "not found") {
			return false, nil
		}
		return false, fmt.Errorf("asset lookup failed: %s", result.Error.Message)
	}

	return true, nil
}

// SignedURL builds a token-authenticated delivery URL that stops working
// after the TTL elapses.
func (s *Service) SignedURL(_ context.Context, filePath string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", fmt.Errorf("file path must not be empty")
	}

	resource := "/" + s.publicID(filePath)
	expires := s.now().Add(ttl).Unix()

	payload := fmt.Sprintf("exp=%d~acl=%s", expires, resource)
	mac := hmac.New(sha256.New, []byte(s.apiSecret))
	mac.Write([]byte(payload))
	token := fmt.Sprintf("%s~hmac=%s", payload, hex.EncodeToString(mac.Sum(nil)))

	signed := fmt.Sprintf("https://res.cloudinary.com/%s/raw/upload%s?__cld_token__=%s",
		s.cloudName, resource, url.QueryEscape(token))

	s.logger.Debug().Str("file_path", filePath).Int64("expires", expires).Msg("signed url issued")

	return signed, nil
}

func (s *Service) publicID(filePath string) string {
	trimmed := strings.TrimLeft(filePath, "/")
	if s.bucket == "" {
		return trimmed
	}
	return s.bucket + "/" + trimmed
}
