package handlers

import (
	"strings"
	"testing"
)

func TestValidateIngest(t *testing.T) {
	cases := []struct {
		name string
		req  ingestRequest
		want string
	}{
		{"valid", ingestRequest{Title: "Lost jacket", From: "kid@school.example"}, ""},
		{"missing title", ingestRequest{From: "kid@school.example"}, "title is required"},
		{"blank title", ingestRequest{Title: "   ", From: "kid@school.example"}, "title is required"},
		{"long title", ingestRequest{Title: strings.Repeat("x", 256), From: "kid@school.example"}, "title is too long"},
		{"missing sender", ingestRequest{Title: "Lost jacket"}, "sender address is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validateIngest(&tc.req); got != tc.want {
				t.Errorf("validateIngest() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUploadFormValidate(t *testing.T) {
	valid := uploadForm{
		Title:     "Black umbrella",
		Category:  "OTHER_MISC",
		DateFound: "2026-03-01",
		ItemType:  "SENIOR",
	}
	if errs := valid.validate(); len(errs) != 0 {
		t.Errorf("expected valid form, got %v", errs)
	}

	invalid := uploadForm{
		Title:     "",
		Category:  "STUFF",
		DateFound: "yesterday",
		ItemType:  "ADULT",
	}
	errs := invalid.validate()
	for _, field := range []string{"title", "category", "date_found", "item_type"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected a field error for %s, got %v", field, errs)
		}
	}
}
