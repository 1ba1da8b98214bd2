package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestListJSONKeepsEmptyPlacesArray(t *testing.T) {
	l := List{ID: 1, UserID: 1, Title: "Kitchen", Places: []Place{}}
	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"places":[]`) {
		t.Errorf("marshalled list = %s, want a \"places\":[] key", b)
	}
}

func TestListJSONWithPlaces(t *testing.T) {
	due, err := ParseDate("2026-09-08")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	l := List{ID: 2, UserID: 1, Title: "Bathroom", Places: []Place{
		{ID: 5, Name: "浴槽", NextDueDate: due, IntervalDays: 7},
	}}
	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, want := range []string{`"places":[{`, `"next_due_date":"2026-09-08"`, `"interval_days":7`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("marshalled list = %s, missing %s", b, want)
		}
	}
}
