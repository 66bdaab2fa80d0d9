package service

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateProfileQR generates a PNG QR code linking to the user's profile
	GenerateProfileQR(userID int64) ([]byte, error)
}
