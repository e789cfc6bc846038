package datefmt

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1990-05-17", "1990-05-17", false},
		{" 1990-05-17 ", "1990-05-17", false},
		{"1990-05-17T10:30:00Z", "1990-05-17", false},
		{"1990-05-17T23:30:00+05:30", "1990-05-17", false},
		{"17/05/1990", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var v struct {
		Dob  Date  `json:"dob"`
		Date *Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"dob":"2001-02-03","date":null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Dob.String() != "2001-02-03" {
		t.Errorf("expected 2001-02-03, got %s", v.Dob)
	}
	if v.Date != nil {
		t.Error("expected null to leave pointer nil")
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"dob":"2001-02-03","date":null}` {
		t.Errorf("unexpected JSON %s", b)
	}

	if err := json.Unmarshal([]byte(`{"dob":20010203}`), &v); err == nil {
		t.Error("expected numeric date to be rejected")
	}
	if err := json.Unmarshal([]byte(`{"dob":"yesterday"}`), &v); err == nil {
		t.Error("expected malformed date to be rejected")
	}
}

func TestDate_ScanValue(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	v, err := d.Value()
	if err != nil || v != "2020-01-31" {
		t.Errorf("Value() = %v, %v", v, err)
	}
	if err := d.Scan(42); err == nil {
		t.Error("expected unsupported source type to fail")
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Errorf("expected nil to scan to zero date, got %v (%v)", d, err)
	}
	if v, _ := d.Value(); v != nil {
		t.Errorf("expected zero date to be NULL, got %v", v)
	}
}

func TestAgeOn(t *testing.T) {
	dob, _ := Parse("1990-05-17")
	tests := []struct {
		on   time.Time
		want int
	}{
		{time.Date(2020, 5, 16, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		if got := AgeOn(dob, tt.on); got != tt.want {
			t.Errorf("AgeOn(%s, %s) = %d, want %d", dob, tt.on.Format(Layout), got, tt.want)
		}
	}
	if AgeOn(Date{}, time.Now()) != 0 {
		t.Error("expected zero dob to give age 0")
	}
}
