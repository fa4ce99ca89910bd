package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		text string
		want Label
	}{
		{"SŁUŻBY RATUNKOWE", LabelEmergency},
		{"służby ratunkowe", LabelEmergency},
		{"Odpowiedź: SLUZBY RATUNKOWE.", LabelEmergency},
		{"**SŁUŻBY MIEJSKIE**", LabelMunicipal},
		{"Sluzby miejskie", LabelMunicipal},
		{"SŁUŻBY RATUNKOWE lub SŁUŻBY MIEJSKIE", LabelUnknown},
		{"Nie wiem", LabelUnknown},
		{"", LabelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLabel(tt.text))
		})
	}
}
