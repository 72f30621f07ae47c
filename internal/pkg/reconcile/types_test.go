package reconcile

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalIDAcceptsStringAndNumber(t *testing.T) {
	var p struct {
		ID ExternalID `json:"id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc-123"}`), &p))
	assert.Equal(t, "abc-123", p.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":999}`), &p))
	assert.Equal(t, "999", p.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &p))
	assert.Equal(t, "", p.ID.String())
}

func TestDecodeAppointmentPayload(t *testing.T) {
	body := []byte(`{
		"id": 555,
		"closer": {"id": 42, "name": "Jordan Cole"},
		"contact": {"id": "cust-1", "name": "Pat Homeowner"},
		"user": {"id": 42},
		"appointment_status_title": "Sale Signed"
	}`)

	p, err := DecodeAppointmentPayload(body)
	require.NoError(t, err)
	assert.Equal(t, "555", p.ID.String())
	assert.Equal(t, "42", p.Closer.ID.String())
	assert.Equal(t, "Sale Signed", p.AppointmentStatusTitle)
}

func TestDecodeAppointmentPayloadMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"closer":{"id":1},"contact":{"id":1},"user":{"id":1},"appointment_status_title":"x"}`},
		{"missing closer", `{"id":1,"contact":{"id":1},"user":{"id":1},"appointment_status_title":"x"}`},
		{"missing contact", `{"id":1,"closer":{"id":1},"user":{"id":1},"appointment_status_title":"x"}`},
		{"missing user", `{"id":1,"closer":{"id":1},"contact":{"id":1},"appointment_status_title":"x"}`},
		{"missing title", `{"id":1,"closer":{"id":1},"contact":{"id":1},"user":{"id":1}}`},
		{"not json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAppointmentPayload([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPayload))
		})
	}
}

func TestDecodeContactPayload(t *testing.T) {
	p, err := DecodeContactPayload([]byte(`{"id":"cust-9","name":"Sam Roofline"}`), false)
	require.NoError(t, err)
	assert.Equal(t, "cust-9", p.ID.String())

	_, err = DecodeContactPayload([]byte(`{"id":"cust-9"}`), false)
	assert.True(t, errors.Is(err, ErrInvalidPayload))

	// status-changed additionally requires status
	_, err = DecodeContactPayload([]byte(`{"id":"cust-9","firstName":"Sam"}`), true)
	assert.True(t, errors.Is(err, ErrInvalidPayload))

	p, err = DecodeContactPayload([]byte(`{"id":"cust-9","firstName":"Sam","status":"contacted"}`), true)
	require.NoError(t, err)
	assert.Equal(t, "contacted", p.Status)
}

func TestKnockedAddress(t *testing.T) {
	p := &RepCardContactPayload{Address: "12 Elm St", City: "Mesa", State: "AZ", Zip: "85201"}
	assert.Equal(t, "12 Elm St, Mesa, AZ, 85201", p.KnockedAddress())

	p = &RepCardContactPayload{City: "Mesa"}
	assert.Equal(t, "Mesa", p.KnockedAddress())

	p = &RepCardContactPayload{}
	assert.Equal(t, "Unknown", p.KnockedAddress())
}

func TestAuroraDesignEventValidate(t *testing.T) {
	e := &AuroraDesignEvent{DesignRequestID: "dr-1", Status: "completed"}
	require.NoError(t, e.Validate())

	assert.Error(t, (&AuroraDesignEvent{Status: "completed"}).Validate())
	assert.Error(t, (&AuroraDesignEvent{DesignRequestID: "dr-1"}).Validate())
}
