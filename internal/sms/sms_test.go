package sms

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twilio/twilio-go/client"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name, raw, code, want string
	}{
		{"local trunk prefix", "0770 123 4567", "964", "+9647701234567"},
		{"international prefix", "00971-50-123-4567", "964", "+971501234567"},
		{"already e164", "+1 (415) 555-0100", "964", "+14155550100"},
		{"bare digits", "9647701234567", "964", "+9647701234567"},
		{"custom country code", "0501234567", "+971", "+971501234567"},
		{"empty country code falls back", "0770", "", "+964770"},
		{"empty", "  ", "964", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw, tt.code))
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, knownCodes[20005], Describe(&client.TwilioRestError{Code: 20005, Message: "Account suspended"}))
	assert.Equal(t, knownCodes[21211], Describe(fmt.Errorf("send: %w", &client.TwilioRestError{Code: 21211})))
	assert.Equal(t, knownCodes[21612], Describe(&client.TwilioRestError{Code: 21612}))
	assert.Equal(t, "Queue overflow", Describe(&client.TwilioRestError{Code: 30001, Message: "\x1b[31mQueue overflow\x1b[0m"}))
	assert.Equal(t, "dial tcp: timeout", Describe(errors.New("\x1b[1mdial tcp: timeout\x1b[0m")))
	assert.Empty(t, Describe(nil))
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", StripANSI("plain"))
	assert.Equal(t, "red text", StripANSI("\x1b[31;1mred text\x1b[0m"))
}
