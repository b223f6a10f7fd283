package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Twilio sends follow-up messages as SMS through the Twilio REST API.
type Twilio struct {
	client *twilio.RestClient
	from   string
}

// NewTwilio creates a Twilio dispatcher sending from the given number.
func NewTwilio(accountSID, authToken, from string) *Twilio {
	return &Twilio{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

// Notify sends the body as an SMS to the contact address. The Twilio client
// does not accept a context; ctx is part of the Dispatcher contract only.
func (t *Twilio) Notify(ctx context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("notify: send sms to %s: %w", to, err)
	}
	return nil
}
