package qrcode

import (
	"fmt"
	"strconv"
	"strings"

	"tiktok/config"
	"tiktok/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	profileEndpoint      string
}

// New creates the QR code service from configuration. The code links to the
// profile read route, served at qrcode.baseUrl joined with http.basePath.
func New(cfg *config.Config) service.QRCodeService {
	basePath := cfg.HTTP.BasePath
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M", ProfileEndpoint("", basePath))
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, ProfileEndpoint(cfg.QRCode.BaseURL, basePath))
}

// ProfileEndpoint joins the public origin with the route group that serves GET /profile/.
func ProfileEndpoint(baseURL, basePath string) string {
	endpoint := strings.TrimRight(baseURL, "/")
	if prefix := strings.Trim(basePath, "/"); prefix != "" {
		endpoint += "/" + prefix
	}

	return endpoint + "/profile/"
}

// NewQRCodeService creates a new QR code service instance.
// profileEndpoint is the absolute URL of the profile read route.
func NewQRCodeService(size int, errorCorrectionLevel, profileEndpoint string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		profileEndpoint:      profileEndpoint,
	}
}

// GenerateProfileQR encodes the profile link of the user as a PNG
func (s *qrcodeService) GenerateProfileQR(userID int64) ([]byte, error) {
	qrCode, err := qrcode.New(s.profileURL(userID), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

func (s *qrcodeService) profileURL(userID int64) string {
	return s.profileEndpoint + "?id=" + strconv.FormatInt(userID, 10)
}
