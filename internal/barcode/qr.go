package barcode

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultLabelSize is the default QR label edge length in pixels.
const DefaultLabelSize = 256

// EncodeLabel renders the scan payload for a record as a QR code PNG. The
// encoded text is the same JSON object parsePayload accepts, so a printed
// label round-trips through the scanner.
func EncodeLabel(payloadType string, uid int64, size int) ([]byte, error) {
	if payloadType != TypeBook && payloadType != TypeUser {
		return nil, fmt.Errorf("unknown label type %q", payloadType)
	}
	if size <= 0 {
		size = DefaultLabelSize
	}

	text, err := codec.MarshalToString(Payload{Type: payloadType, UID: uid})
	if err != nil {
		return nil, fmt.Errorf("encode label payload: %w", err)
	}

	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render label: %w", err)
	}
	return png, nil
}
