package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured is returned by NewCloudinary when credentials are missing.
var ErrNotConfigured = errors.New("cloudinary is not configured")

// Transformation crops uploads to a 250px square.
const Transformation = "c_fill,h_250,w_250"

// Uploader stores an avatar image for an account and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, email string, image io.Reader) (string, error)
}

// CloudinaryConfig holds Cloudinary account credentials.
type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

// Enabled reports whether every credential is present.
func (c CloudinaryConfig) Enabled() bool {
	return strings.TrimSpace(c.CloudName) != "" &&
		strings.TrimSpace(c.APIKey) != "" &&
		strings.TrimSpace(c.APISecret) != ""
}

// Cloudinary uploads avatars to a Cloudinary media library.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds an uploader from cfg.
func NewCloudinary(cfg CloudinaryConfig) (*Cloudinary, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld}, nil
}

// PublicID is the media library path of email's avatar.
func PublicID(email string) string {
	return "Images/" + strings.ToLower(strings.TrimSpace(email))
}

// Upload replaces email's avatar with image and returns the cropped URL.
func (c *Cloudinary) Upload(ctx context.Context, email string, image io.Reader) (string, error) {
	if c == nil || c.cld == nil {
		return "", ErrNotConfigured
	}
	publicID := PublicID(email)
	result, err := c.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	if result != nil && result.Error.Message != "" {
		return "", fmt.Errorf("upload avatar: %s", result.Error.Message)
	}
	version := 0
	if result != nil {
		version = result.Version
	}
	return c.url(publicID, version)
}

// url pins the delivery URL to version so each upload busts CDN caches.
func (c *Cloudinary) url(publicID string, version int) (string, error) {
	img, err := c.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("avatar url: %w", err)
	}
	img.Transformation = Transformation
	img.Version = version
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("avatar url: %w", err)
	}
	return url, nil
}
