// Package qrpayload encodes and decodes the text content embedded in a
// clinic's QR code. Current codes carry a JSON object tagged with
// type "clinic"; codes issued before that format existed contain the bare
// license number, and both forms stay decodable.
package qrpayload

import (
	"encoding/json"
	"strings"
	"time"
)

// PayloadType is the discriminator value of a structured clinic payload.
const PayloadType = "clinic"

// NewClinicID is the placeholder identifier used when encoding a preview
// payload for a clinic that has not been persisted yet.
const NewClinicID = "new"

// Structured is the current wire format of a clinic QR code.
type Structured struct {
	Type    string `json:"type"`
	License string `json:"license"`
	ID      string `json:"id"`
	Issued  string `json:"issued"`
}

// Payload is the tagged result of decoding QR text: either a structured
// clinic payload or a legacy bare license string.
type Payload struct {
	Structured *Structured
	Raw        string
}

// IsStructured reports whether the payload was parsed from the current
// JSON-tagged format.
func (p Payload) IsStructured() bool {
	return p.Structured != nil
}

// License returns the license number carried by the payload regardless of
// which format it was decoded from.
func (p Payload) License() string {
	if p.Structured != nil {
		return p.Structured.License
	}
	return p.Raw
}

// Encode builds the QR text for a clinic license. clinicID may be
// NewClinicID for a preview before the record is saved. The issued stamp is
// recorded with calendar-date precision only.
func Encode(license, clinicID string, issued time.Time) (string, error) {
	payload := Structured{
		Type:    PayloadType,
		License: license,
		ID:      clinicID,
		Issued:  issued.Format("2006-01-02"),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses QR text into a tagged payload. It is total: any input that
// is not a well-formed structured payload degrades to the legacy form with
// the raw text as the license number. Malformed input is an expected case,
// not an error.
func Decode(text string) Payload {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return Payload{Raw: text}
	}

	var structured Structured
	if err := json.Unmarshal([]byte(trimmed), &structured); err != nil {
		return Payload{Raw: text}
	}
	if structured.Type != PayloadType || structured.License == "" {
		return Payload{Raw: text}
	}

	return Payload{Structured: &structured}
}

// DecodeLicense extracts the license number from QR text, falling back to
// the literal text for legacy codes. Never fails.
func DecodeLicense(text string) string {
	return Decode(text).License()
}
