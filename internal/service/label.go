package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Label string

const (
	LabelEmergency Label = "SŁUŻBY RATUNKOWE"
	LabelMunicipal Label = "SŁUŻBY MIEJSKIE"
	// LabelUnknown matches the unassigned bucket used by the incident backend.
	LabelUnknown Label = "Inne"
)

// Ł has no canonical decomposition, so it is folded by hand.
var strokeReplacer = strings.NewReplacer("Ł", "L", "ł", "l")

// ParseLabel maps free model text onto one of the two labels. Matching ignores
// case and Polish diacritics; text naming both or neither label is LabelUnknown.
func ParseLabel(text string) Label {
	folded := fold(text)
	emergency := strings.Contains(folded, "RATUNKOW")
	municipal := strings.Contains(folded, "MIEJSK")

	switch {
	case emergency && !municipal:
		return LabelEmergency
	case municipal && !emergency:
		return LabelMunicipal
	default:
		return LabelUnknown
	}
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strokeReplacer.Replace(s))
	if err != nil {
		out = s
	}
	return cases.Upper(language.Polish).String(out)
}
