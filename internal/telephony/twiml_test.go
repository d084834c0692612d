package telephony

import (
	"strings"
	"testing"
)

func TestDialDirectiveRender(t *testing.T) {
	d := DialDirective{
		Number:             "+18009359935",
		CallerID:           "+15550001111",
		StatusCallbackPath: "/api/calling/call-status",
	}
	out, err := d.Render()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{
		"<Response>",
		`callerId="+15550001111"`,
		`timeout="30"`,
		`action="/api/calling/call-status"`,
		`method="POST"`,
		"<Number>+18009359935</Number>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in markup:\n%s", want, out)
		}
	}
	if strings.Count(out, "<Dial") != 1 {
		t.Fatalf("expected exactly one Dial verb:\n%s", out)
	}
}

func TestDialDirectiveRequiresNumber(t *testing.T) {
	_, err := DialDirective{CallerID: "+15550001111"}.Render()
	if err == nil {
		t.Fatalf("expected error for missing number")
	}
}

func TestDialDirectiveRequiresCallerID(t *testing.T) {
	_, err := DialDirective{Number: "+18009359935"}.Render()
	if err == nil {
		t.Fatalf("expected error for missing caller ID")
	}
}

func TestDialDirectiveCustomTimeout(t *testing.T) {
	d := DialDirective{Number: "+18009359935", CallerID: "+15550001111", TimeoutSeconds: 45}
	out, err := d.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `timeout="45"`) {
		t.Fatalf("expected custom timeout in markup:\n%s", out)
	}
}

func TestApologyHasSayAndNoDial(t *testing.T) {
	out := Apology()
	if !strings.Contains(out, "<Say>") {
		t.Fatalf("expected Say verb:\n%s", out)
	}
	if !strings.Contains(out, apologyText) {
		t.Fatalf("expected apology text:\n%s", out)
	}
	if strings.Contains(out, "<Dial") {
		t.Fatalf("apology must not dial:\n%s", out)
	}
	if !strings.Contains(out, "<Hangup") {
		t.Fatalf("expected Hangup verb:\n%s", out)
	}
}
