package twilio

import (
	"fmt"
	"net/http"

	"github.com/Daskott/sosrelay/server/sos"
	"github.com/Daskott/sosrelay/shared"
	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type ClientWrapper struct {
	client  *twilio.RestClient
	config  shared.TwilioConfig
	devMode bool
	logg    *zap.SugaredLogger
}

func NewClient(config shared.TwilioConfig, devMode bool, logg *zap.SugaredLogger) *ClientWrapper {
	return newClient(config, devMode, nil, logg)
}

// newClient uses 'httpClient' for all twilio requests, or the library default if nil
func newClient(config shared.TwilioConfig, devMode bool, httpClient *http.Client, logg *zap.SugaredLogger) *ClientWrapper {
	baseClient := &twclient.Client{
		Credentials: twclient.NewCredentials(config.AccountSid, config.AuthToken),
		HTTPClient:  httpClient,
	}
	baseClient.SetAccountSid(config.AccountSid)

	return &ClientWrapper{
		client:  twilio.NewRestClientWithParams(twilio.RestClientParams{Client: baseClient}),
		config:  config,
		devMode: devMode,
		logg:    logg,
	}
}

// Send creates a twilio message. In dev mode the message is only logged.
// A message twilio accepts but flags with an error code is treated as failed.
func (cw *ClientWrapper) Send(msg sos.Message) error {
	if cw.devMode {
		cw.logg.Infof("[dev] sms from=%v to=%v body=%q", msg.From, msg.To, msg.Body)
		return nil
	}

	resp, err := cw.client.ApiV2010.CreateMessage(messageParams(msg))
	if err != nil {
		return fmt.Errorf("CreateMessage: %v", err)
	}

	if resp.ErrorCode != nil {
		errMsg := ""
		if resp.ErrorMessage != nil {
			errMsg = *resp.ErrorMessage
		}
		return fmt.Errorf("CreateMessage: twilio error %v: %v", *resp.ErrorCode, errMsg)
	}

	return nil
}

func messageParams(msg sos.Message) *openapi.CreateMessageParams {
	params := &openapi.CreateMessageParams{}
	params.SetFrom(msg.From)
	params.SetTo(msg.To)
	params.SetBody(msg.Body)

	return params
}
