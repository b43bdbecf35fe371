package services

import (
	"context"
	"strings"

	"hr-reminders/config"
	"hr-reminders/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioMessenger sends reminder text over WhatsApp or SMS.
type TwilioMessenger struct {
	api            messageCreator
	phoneNumber    string
	whatsAppNumber string
	whatsApp       bool
	log            *logrus.Logger
}

func NewTwilioMessenger(opts config.TwilioOptions, log *logrus.Logger) *TwilioMessenger {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: opts.AccountSID,
		Password: opts.AuthToken,
	})
	return &TwilioMessenger{
		api:            client.Api,
		phoneNumber:    opts.PhoneNumber,
		whatsAppNumber: opts.WhatsAppNumber,
		whatsApp:       opts.WhatsAppEnabled && opts.WhatsAppNumber != "",
		log:            log,
	}
}

// Channel reports whether phone goes out over "whatsapp" or "sms".
func (t *TwilioMessenger) Channel(phone string) string {
	// WhatsApp needs an E.164 number
	if t.whatsApp && strings.HasPrefix(utils.CleanPhone(phone), "+") {
		return "whatsapp"
	}
	return "sms"
}

func (t *TwilioMessenger) SendText(ctx context.Context, to, body string) error {
	if !utils.ValidatePhone(to) {
		return errors.Wrapf(ErrInvalidPhone, "%q", to)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	phone := utils.CleanPhone(to)

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if t.Channel(phone) == "whatsapp" {
		params.SetTo("whatsapp:" + phone)
		params.SetFrom("whatsapp:" + t.whatsAppNumber)
	} else {
		params.SetTo(phone)
		params.SetFrom(t.phoneNumber)
	}

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return errors.Wrapf(err, "twilio message to %s", phone)
	}
	if resp != nil && resp.Sid != nil {
		t.log.WithFields(logrus.Fields{"to": phone, "sid": *resp.Sid}).Debug("text reminder sent")
	}
	return nil
}
