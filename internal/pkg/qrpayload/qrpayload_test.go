package qrpayload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeProducesStructuredPayload(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC)
	text, err := Encode("JOR-DEN-001", "abc123", issued)
	require.NoError(t, err)

	payload := Decode(text)
	require.True(t, payload.IsStructured())
	assert.Equal(t, "JOR-DEN-001", payload.Structured.License)
	assert.Equal(t, "abc123", payload.Structured.ID)
	// date precision only, no time component
	assert.Equal(t, "2024-01-01", payload.Structured.Issued)
	assert.Equal(t, PayloadType, payload.Structured.Type)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	licenses := []string{"JOR-DEN-001", "ABCDE", "A1B2-C3D4-E5F6-G7H8"}
	for _, license := range licenses {
		text, err := Encode(license, NewClinicID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, license, DecodeLicense(text))
	}
}

func TestDecodeLegacyIsIdentity(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"JOR-DEN-002",
		"LIC001",
		"not json at all",
		"{broken json",
		"",
	}
	for _, input := range inputs {
		payload := Decode(input)
		assert.False(t, payload.IsStructured(), "input %q", input)
		assert.Equal(t, input, payload.License(), "input %q", input)
	}
}

func TestDecodeStructuredSample(t *testing.T) {
	t.Parallel()

	text := `{"type":"clinic","license":"JOR-DEN-001","id":"abc123","issued":"2024-01-01"}`
	assert.Equal(t, "JOR-DEN-001", DecodeLicense(text))
}

func TestDecodeRejectsWrongShape(t *testing.T) {
	t.Parallel()

	// valid JSON but not a clinic payload: fall back to the literal text
	cases := []string{
		`{"type":"pharmacy","license":"JOR-PHA-001"}`,
		`{"type":"clinic"}`,
		`{"license":"JOR-DEN-001"}`,
		`[1,2,3]`,
		`"JOR-DEN-001"`,
	}
	for _, text := range cases {
		payload := Decode(text)
		assert.False(t, payload.IsStructured(), "input %q", text)
		assert.Equal(t, text, payload.License(), "input %q", text)
	}
}

func TestDecodeToleratesSurroundingWhitespace(t *testing.T) {
	t.Parallel()

	text := "  {\"type\":\"clinic\",\"license\":\"JOR-DEN-003\",\"id\":\"x\",\"issued\":\"2024-06-01\"}\n"
	assert.Equal(t, "JOR-DEN-003", DecodeLicense(text))
}
