package extract

import "strings"

var separatorStripper = strings.NewReplacer(",", "", ".", "")

// rowTokens holds one row's numeric tokens in left-to-right reading order
// and its space-joined candidate player name.
type rowTokens struct {
	numbers []string
	name    string
}

// tokenizeRow splits a row's detections into numeric tokens and name
// fragments. Each detection is classified independently: text that is all
// digits once thousands/decimal separators are stripped counts as a single
// number; anything else has every maximal digit run pulled out as its own
// number, with the non-digit residue kept as a name fragment when it is
// longer than one character after trimming.
//
// The dual mode matters because OCR routinely fuses a stat column onto the
// player name ("Ztee123456") or splits one number across two detections
// that reading order re-joins.
func tokenizeRow(row Row) rowTokens {
	var numbers []string
	var fragments []string

	for _, d := range row {
		stripped := separatorStripper.Replace(d.Text)
		if stripped != "" && isDigits(stripped) {
			numbers = append(numbers, stripped)
			continue
		}

		runs, residue := splitDigitRuns(d.Text)
		numbers = append(numbers, runs...)
		if residue = strings.TrimSpace(residue); len(residue) > 1 {
			fragments = append(fragments, residue)
		}
	}

	return rowTokens{
		numbers: numbers,
		name:    strings.Join(fragments, " "),
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitDigitRuns returns every maximal run of ASCII digits in s, in order,
// along with the remaining non-digit characters.
func splitDigitRuns(s string) (runs []string, residue string) {
	var run, rest strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			run.WriteRune(r)
			continue
		}
		if run.Len() > 0 {
			runs = append(runs, run.String())
			run.Reset()
		}
		rest.WriteRune(r)
	}
	if run.Len() > 0 {
		runs = append(runs, run.String())
	}

	return runs, rest.String()
}
