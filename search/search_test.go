package search

import (
	"net/url"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
)

func mustDecimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestBuildQueryInsertionOrder(t *testing.T) {
	params := new(Params).
		Add("status", Token{Code: "active"}).
		Add("date", Date{Prefix: PrefixGreaterOrEqual, Precision: PrecisionDay, Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}).
		Add("subject", Reference{Type: "Patient", Id: "123"})

	got := BuildQuery(params, Options{Count: 20})
	want := "status=active&date=ge2024-01-01&subject=Patient%2F123&_count=20"
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuildQuerySimpleTokenAndCount(t *testing.T) {
	params := new(Params).Add("status", Token{Code: "active"})
	got := BuildQuery(params, Options{Count: 20})
	if got != "status=active&_count=20" {
		t.Errorf("BuildQuery() = %q", got)
	}
}

func TestBuildQueryRepeatedParameterIsAnd(t *testing.T) {
	params := new(Params).
		Add("date", Date{Prefix: PrefixGreaterOrEqual, Precision: PrecisionYear, Value: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}).
		Add("date", Date{Prefix: PrefixLessThan, Precision: PrecisionYear, Value: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})

	got := BuildQuery(params, Options{})
	if got != "date=ge2023&date=lt2025" {
		t.Errorf("BuildQuery() = %q", got)
	}
}

func TestBuildQueryMatchAnyJoinsWithComma(t *testing.T) {
	params := new(Params).
		Add("status", MatchAny{Token{Code: "active"}, Token{Code: "completed"}})
	got := BuildQuery(params, Options{})
	if got != "status=active%2Ccompleted" {
		t.Errorf("BuildQuery() = %q", got)
	}
}

func TestBuildQueryModifierAndChain(t *testing.T) {
	params := new(Params).
		AddWithModifier("name", "exact", String("Chalmers")).
		Add(Chain("subject", "Patient", "name"), String("peter"))
	got := BuildQuery(params, Options{})
	if got != "name%3Aexact=Chalmers&subject%3APatient.name=peter" {
		t.Errorf("BuildQuery() = %q", got)
	}
}

func TestBuildQueryOptions(t *testing.T) {
	params := new(Params).Add("code", Token{Code: "8302-2"})
	got := BuildQuery(params, Options{
		Includes: []string{"Observation:subject"},
		Sort:     []string{"-date", "status"},
		Summary:  "true",
		Cursor:   Cursor("page-2"),
		Count:    50,
	})
	want := "code=8302-2&_include=Observation%3Asubject&_sort=-date%2Cstatus&_summary=true&_cursor=page-2&_count=50"
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestValueStrings(t *testing.T) {
	system, _ := url.Parse("http://unitsofmeasure.org")
	loinc, _ := url.Parse("http://loinc.org")

	tests := []struct {
		value Value
		want  string
	}{
		{Number{Prefix: PrefixGreaterThan, Value: mustDecimal(t, "5.4")}, "gt5.4"},
		{Number{Value: mustDecimal(t, "100.00")}, "100.00"},
		{Token{System: loinc, Code: "8302-2"}, "http://loinc.org|8302-2"},
		{Token{Code: "final"}, "final"},
		{Quantity{Prefix: PrefixLessOrEqual, Value: mustDecimal(t, "5.4"), System: system, Code: "mg"}, "le5.4|http://unitsofmeasure.org|mg"},
		{Reference{Type: "Patient", Id: "23", Version: "45"}, "Patient/23/_history/45"},
		{Composite{"code", "value"}, "code$value"},
		{Special("near"), "near"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseDatePrecision(t *testing.T) {
	tests := []struct {
		in   string
		want DatePrecision
	}{
		{"2024", PrecisionYear},
		{"2024-03", PrecisionMonth},
		{"2024-03-02", PrecisionDay},
		{"2024-03-02T09:30Z", PrecisionHourMinute},
		{"2024-03-02T09:30:15.5+01:00", PrecisionFullTime},
	}
	for _, tt := range tests {
		_, prec, err := ParseDate(tt.in, time.UTC)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.in, err)
			continue
		}
		if prec != tt.want {
			t.Errorf("ParseDate(%q) precision = %v, want %v", tt.in, prec, tt.want)
		}
	}
}
