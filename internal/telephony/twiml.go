package telephony

import (
	"bytes"
	"encoding/xml"
	"errors"
	"net/http"
	"strings"
)

// TwiML is a minimal Twilio Markup Language response builder.
// It intentionally avoids any provider SDK dependency.
//
// Only the verbs this gateway emits are modeled: a Dial with a single
// Number child, a spoken Say, and Hangup.

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any    `xml:",any"`
}

type twimlDial struct {
	XMLName  xml.Name `xml:"Dial"`
	CallerID string   `xml:"callerId,attr,omitempty"`
	Timeout  int      `xml:"timeout,attr,omitempty"`
	Action   string   `xml:"action,attr,omitempty"`
	Method   string   `xml:"method,attr,omitempty"`
	Number   string   `xml:"Number"`
}

type twimlSay struct {
	XMLName xml.Name `xml:"Say"`
	Text    string   `xml:",chardata"`
}

type twimlHangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

const defaultDialTimeout = 30

// apologyText is spoken to the caller when directive construction fails.
const apologyText = "Sorry, there was an error connecting your call. Please try again later."

// DialDirective instructs the provider to dial a number and report leg
// status back to the gateway. It is a constant function of server
// configuration; the inbound call's fields never select the target.
type DialDirective struct {
	// Number is the destination (E.164).
	Number string

	// CallerID is the provider-registered number shown to the callee.
	CallerID string

	// TimeoutSeconds bounds ringing; zero means the default of 30.
	TimeoutSeconds int

	// StatusCallbackPath receives the dial outcome via POST.
	StatusCallbackPath string
}

// Render serializes the directive as a TwiML document.
func (d DialDirective) Render() (string, error) {
	if strings.TrimSpace(d.Number) == "" {
		return "", errors.New("telephony: dial number is required")
	}
	if strings.TrimSpace(d.CallerID) == "" {
		return "", errors.New("telephony: caller ID is required")
	}

	timeout := d.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	return render(twimlResponse{Verbs: []any{twimlDial{
		CallerID: d.CallerID,
		Timeout:  timeout,
		Action:   d.StatusCallbackPath,
		Method:   http.MethodPost,
		Number:   d.Number,
	}}})
}

// Apology returns the failure document: a spoken apology and hangup,
// never a Dial. The provider must always receive well-formed markup,
// so this cannot fail; a baked literal backs the encoder.
func Apology() string {
	out, err := render(twimlResponse{Verbs: []any{
		twimlSay{Text: apologyText},
		twimlHangup{},
	}})
	if err != nil {
		return xml.Header + "<Response><Say>" + apologyText + "</Say><Hangup></Hangup></Response>"
	}
	return out
}

func render(r twimlResponse) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
