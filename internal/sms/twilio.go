package sms

import (
	"errors"
	"net/http"
	"time"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/pointdigital/manager-api/internal/model"
)

var errNoSID = errors.New("twilio returned no message sid")

// TwilioSender builds a client per call because credentials live in the
// settings record and can change between requests.
type TwilioSender struct {
	timeout time.Duration
}

func NewTwilioSender(timeout time.Duration) *TwilioSender {
	return &TwilioSender{timeout: timeout}
}

// Send makes one provider call. The sender name stands in for From when no
// number is configured.
func (s *TwilioSender) Send(creds model.SMSCredentials, to, body string) (string, error) {
	httpClient := &client.Client{
		Credentials: client.NewCredentials(creds.AccountSID, creds.AuthToken),
		HTTPClient:  &http.Client{Timeout: s.timeout},
	}
	httpClient.SetAccountSid(creds.AccountSID)
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{Client: httpClient})

	from := creds.FromNumber
	if from == "" {
		from = creds.SenderName
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := rest.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", errNoSID
	}
	return *resp.Sid, nil
}
