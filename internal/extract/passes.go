package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dobPatterns are tried in order on each line.
var dobPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{2}[/-]\d{2}[/-]\d{4}\b`),     // 15/08/1990, 15-08-1990
	regexp.MustCompile(`\b\d{4}[/-]\d{2}[/-]\d{2}\b`),     // 1990-08-15
	regexp.MustCompile(`\b\d{2}\s[A-Za-z]{3,9}\s\d{4}\b`), // 15 August 1990
}

var (
	nationalIDPattern = regexp.MustCompile(`\b\d{4} \d{4} \d{4}\b`)
	taxIDPattern      = regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`)
	namePattern       = regexp.MustCompile(`^[A-Z][a-z]+(\s[A-Z][a-z]+)+$`)
)

// genderTerms are checked in this order on each line. "female" contains
// "male", so it has to come first.
var genderTerms = []string{"female", "male", "transgender"}

// nameNoise marks lines that look like names but are card furniture.
var nameNoise = []string{"government", "india", "address", "birth", "male", "female"}

// maxAddressLines caps the address block.
const maxAddressLines = 3

// DateOfBirth returns the first date-shaped token. Lines are scanned in
// order, and on each line the patterns are tried in priority order, so the
// earliest line with any date wins. Dates are not validated.
func DateOfBirth(lines []string) string {
	for _, line := range lines {
		for _, re := range dobPatterns {
			if m := re.FindString(line); m != "" {
				return m
			}
		}
	}
	return ""
}

// Gender returns "Female", "Male" or "Transgender" for the first line that
// mentions one of them, case-insensitively.
func Gender(lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, term := range genderTerms {
			if strings.Contains(lower, term) {
				return cases.Title(language.English).String(term)
			}
		}
	}
	return ""
}

// IDNumber searches the whole sanitized text for a national ID of three
// space-separated groups of four digits, falling back to a PAN-style
// ABCDE1234F tax ID.
func IDNumber(sanitized string) string {
	if m := nationalIDPattern.FindString(sanitized); m != "" {
		return m
	}
	return taxIDPattern.FindString(sanitized)
}

// Name returns the first line made only of two or more capitalized words,
// skipping lines that mention any nameNoise term.
func Name(lines []string) string {
	for _, line := range lines {
		if containsAny(strings.ToLower(line), nameNoise) {
			continue
		}
		if namePattern.MatchString(line) {
			return line
		}
	}
	return ""
}

// Address collects up to three lines after the first line mentioning
// "address" and joins them with ", ". Further lines mentioning "address"
// are skipped. A single-word line straight after the label ends the block
// empty; once the block has started, single-word lines such as a city name
// are kept.
func Address(lines []string) string {
	var block []string
	started := false
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "address") {
			started = true
			continue
		}
		if !started {
			continue
		}
		if len(block) == 0 && len(strings.Fields(line)) < 2 {
			break
		}
		block = append(block, line)
		if len(block) >= maxAddressLines {
			break
		}
	}
	return strings.Join(block, ", ")
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
