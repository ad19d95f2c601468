package internal

import "encoding/base64"

// The host platform's thank-you URL rides along the notification callback as
// an opaque query value. URL-safe base64 keeps it intact through the gateway
// round-trip.

func EncodeReturnURL(raw string) string {
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func DecodeReturnURL(encoded string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
