package telephony

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// VoiceWebhookForm captures the subset of voice webhook fields we care
// about. Twilio sends application/x-www-form-urlencoded by default.
// Ref: https://www.twilio.com/docs/voice/twiml
//
// All fields are optional at the wire level; the gateway routes to a
// fixed destination regardless, so these feed logging only.

type VoiceWebhookForm struct {
	CallSid    string
	AccountSid string
	From       string
	To         string
	Direction  string
	CallStatus string
}

func ParseVoiceWebhook(r *http.Request) (VoiceWebhookForm, error) {
	if err := r.ParseForm(); err != nil {
		return VoiceWebhookForm{}, err
	}
	return VoiceWebhookForm{
		CallSid:    r.PostFormValue("CallSid"),
		AccountSid: r.PostFormValue("AccountSid"),
		From:       normalizePhone(r.PostFormValue("From")),
		To:         normalizePhone(r.PostFormValue("To")),
		Direction:  r.PostFormValue("Direction"),
		CallStatus: r.PostFormValue("CallStatus"),
	}, nil
}

// ParseStatusCallback reads a call-status notification. Every field is
// read defensively; a missing or malformed duration counts as zero.
func ParseStatusCallback(r *http.Request, occurredAt time.Time) (CallEvent, error) {
	if err := r.ParseForm(); err != nil {
		return CallEvent{}, err
	}

	duration := 0
	if v := strings.TrimSpace(r.PostFormValue("CallDuration")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			duration = n
		}
	}

	return CallEvent{
		CallSid:         r.PostFormValue("CallSid"),
		CallStatus:      r.PostFormValue("CallStatus"),
		DurationSeconds: duration,
		From:            normalizePhone(r.PostFormValue("From")),
		To:              normalizePhone(r.PostFormValue("To")),
		OccurredAt:      occurredAt,
	}, nil
}

func normalizePhone(s string) string {
	// Twilio sometimes sends "anonymous" or empty; keep as-is.
	return strings.TrimSpace(s)
}
