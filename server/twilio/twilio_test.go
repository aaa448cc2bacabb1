package twilio

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Daskott/sosrelay/server/logger"
	"github.com/Daskott/sosrelay/server/sos"
	"github.com/Daskott/sosrelay/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTwilioConfig = shared.TwilioConfig{
	AccountSid:  "ACtest",
	AuthToken:   "secret",
	PhoneNumber: "+15550000000",
}

var testMessage = sos.Message{Body: "help", From: "+15550000000", To: "+15551111111"}

// redirectTransport sends every request to 'target' instead of the twilio api host
type redirectTransport struct {
	target *url.URL
}

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *ClientWrapper {
	apiServer := httptest.NewServer(handler)
	t.Cleanup(apiServer.Close)

	target, err := url.Parse(apiServer.URL)
	require.NoError(t, err)

	httpClient := &http.Client{Transport: redirectTransport{target: target}}
	return newClient(testTwilioConfig, false, httpClient, logger.NewNopLogger())
}

func TestMessageParams(t *testing.T) {
	params := messageParams(testMessage)

	assert.Equal(t, "help", *params.Body)
	assert.Equal(t, "+15550000000", *params.From)
	assert.Equal(t, "+15551111111", *params.To)
}

func TestSendInDevModeDoesNotCallTwilio(t *testing.T) {
	client := NewClient(shared.TwilioConfig{}, true, logger.NewNopLogger())

	err := client.Send(testMessage)
	assert.Nil(t, err)
}

func TestSendPostsMessageToTwilio(t *testing.T) {
	var form url.Values
	var path string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := r.ParseForm(); err == nil {
			form = r.PostForm
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid": "SMtest", "status": "queued"}`))
	})

	require.NoError(t, client.Send(testMessage))
	assert.Equal(t, "/2010-04-01/Accounts/ACtest/Messages.json", path)
	assert.Equal(t, "help", form.Get("Body"))
	assert.Equal(t, "+15550000000", form.Get("From"))
	assert.Equal(t, "+15551111111", form.Get("To"))
}

func TestSendFailures(t *testing.T) {
	testCases := []struct {
		description string
		status      int
		body        string
		expectedErr string
	}{
		{
			"message created with error code",
			http.StatusCreated,
			`{"sid": "SMtest", "status": "failed", "error_code": 30003, "error_message": "Unreachable destination handset"}`,
			"30003",
		},
		{
			"request rejected by twilio",
			http.StatusBadRequest,
			`{"code": 21211, "message": "The 'To' number is not a valid phone number.", "status": 400}`,
			"CreateMessage",
		},
	}

	for _, tcase := range testCases {
		t.Run(tcase.description, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tcase.status)
				w.Write([]byte(tcase.body))
			})

			err := client.Send(testMessage)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tcase.expectedErr)
		})
	}
}
