package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestStatusRecord_JSONRoundTrip(t *testing.T) {
	reported := time.Date(2025, 8, 18, 11, 30, 0, 0, time.UTC)
	want := StatusRecord{
		URL:            "https://example.com",
		IsUp:           false,
		LastCheckDate:  time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
		LastReportDate: &reported,
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got StatusRecord
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.URL != want.URL || got.IsUp != want.IsUp || !got.LastCheckDate.Equal(want.LastCheckDate) {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
	if got.LastReportDate == nil || !got.LastReportDate.Equal(reported) {
		t.Fatalf("lastReportDate mismatch: %v", got.LastReportDate)
	}
}

func TestStatusRecord_NeverReportedOmitsField(t *testing.T) {
	rec := StatusRecord{
		URL:           "https://example.com",
		IsUp:          true,
		LastCheckDate: time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "lastReportDate") {
		t.Fatalf("expected lastReportDate omitted, got %s", b)
	}

	var got StatusRecord
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.LastReportDate != nil {
		t.Fatalf("expected nil lastReportDate, got %v", got.LastReportDate)
	}
}
