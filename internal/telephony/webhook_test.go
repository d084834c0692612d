package telephony

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func formRequest(t *testing.T, path, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestParseVoiceWebhook(t *testing.T) {
	r := formRequest(t, "/api/calling/voice", "CallSid=CA123&From=%2B15551234567&To=%2B15557654321")

	form, err := ParseVoiceWebhook(r)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if form.CallSid != "CA123" {
		t.Fatalf("expected CallSid, got %q", form.CallSid)
	}
	if form.From != "+15551234567" || form.To != "+15557654321" {
		t.Fatalf("unexpected from/to: %q %q", form.From, form.To)
	}
}

func TestParseVoiceWebhookEmptyBody(t *testing.T) {
	r := formRequest(t, "/api/calling/voice", "")

	form, err := ParseVoiceWebhook(r)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if form.CallSid != "" || form.From != "" {
		t.Fatalf("expected zero form, got %+v", form)
	}
}

func TestParseStatusCallback(t *testing.T) {
	r := formRequest(t, "/api/calling/call-status",
		"CallSid=CA123&CallStatus=completed&CallDuration=42&From=%2B15551234567&To=%2B18009359935")
	at := time.Unix(1700000000, 0).UTC()

	ev, err := ParseStatusCallback(r, at)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ev.CallSid != "CA123" || ev.CallStatus != "completed" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.DurationSeconds != 42 {
		t.Fatalf("expected duration 42, got %d", ev.DurationSeconds)
	}
	if !ev.OccurredAt.Equal(at) {
		t.Fatalf("expected occurred_at %v, got %v", at, ev.OccurredAt)
	}
}

func TestParseStatusCallbackDefaultsDuration(t *testing.T) {
	for _, body := range []string{
		"CallSid=CA123",
		"CallSid=CA123&CallDuration=",
		"CallSid=CA123&CallDuration=abc",
		"CallSid=CA123&CallDuration=-5",
	} {
		r := formRequest(t, "/api/calling/call-status", body)
		ev, err := ParseStatusCallback(r, time.Now())
		if err != nil {
			t.Fatalf("body %q: %v", body, err)
		}
		if ev.DurationSeconds != 0 {
			t.Fatalf("body %q: expected duration 0, got %d", body, ev.DurationSeconds)
		}
	}
}

func TestLogSinkRecords(t *testing.T) {
	var buf strings.Builder
	sink := NewLogSink(slog.New(slog.NewTextHandler(&buf, nil)))

	err := sink.Record(context.Background(), CallEvent{
		CallSid:    "CA123",
		CallStatus: "completed",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !strings.Contains(buf.String(), "CA123") {
		t.Fatalf("expected call sid in log output: %s", buf.String())
	}
}
