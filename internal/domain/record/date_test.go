package record

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-05-02")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2025-05-02" {
		t.Fatalf("String() = %q, want 2025-05-02", d.String())
	}

	for _, bad := range []string{"02-05-2025", "2025/05/02", "2025-5-2", "not a date", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestDateJSON(t *testing.T) {
	p := Prescription{
		ID: 7,
		Fields: Fields{
			PrescriptionDate: NewDate(2025, 5, 2),
			PatientName:      "Alice Rahman",
		},
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Prescription
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.PrescriptionDate.Equal(p.PrescriptionDate) {
		t.Fatalf("date round-trip: got %s, want %s", decoded.PrescriptionDate, p.PrescriptionDate)
	}
	if decoded.NextVisitDate != nil {
		t.Fatal("absent nextVisitDate should decode as nil")
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-13-40"`), &d); err == nil {
		t.Error("expected error for impossible date")
	}
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Error("expected error for non-string date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, 5, 2, 13, 45, 0, 0, time.Local)); err != nil {
		t.Fatalf("Scan(time.Time): %v", err)
	}
	// Time-of-day is discarded.
	if d.String() != "2025-05-02" {
		t.Fatalf("scanned date = %s, want 2025-05-02", d)
	}

	if err := d.Scan("2025-06-01"); err != nil {
		t.Fatalf("Scan(string): %v", err)
	}
	if d.String() != "2025-06-01" {
		t.Fatalf("scanned date = %s, want 2025-06-01", d)
	}

	if err := d.Scan(3.14); err == nil {
		t.Error("expected error scanning unsupported type")
	}
}
