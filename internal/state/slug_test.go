package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Passport Number", "passport_number"},
		{"  Date of Birth  ", "date_of_birth"},
		{"E-mail / Contact", "e_mail_contact"},
		{"Visa (Type)", "visa_type"},
		{"UPPER", "upper"},
		{"already_slugged", "already_slugged"},
		{"!!!", ""},
		{"", ""},
		{"2nd Traveller", "2nd_traveller"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slug(tc.label), "label %q", tc.label)
	}
}
