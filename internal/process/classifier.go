// internal/process/classifier.go

package process

import "strings"

// Verdict is the classification of a single line of logon output.
type Verdict int

const (
	Undetermined Verdict = iota
	Succeeded
	Failed
)

func (v Verdict) String() string {
	switch v {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "undetermined"
	}
}

// Rule maps a substring found in an output line to a verdict.
type Rule struct {
	Marker  string
	Verdict Verdict
}

// Classifier decides the outcome of a logon from its output. Rules are
// checked in order and the first match wins.
type Classifier struct {
	Rules []Rule
	// DetailPrefixes selects the lines quoted in a failure message.
	DetailPrefixes []string
}

// DefaultClassifier returns the rules for the ACS logon plugin.
func DefaultClassifier() Classifier {
	return Classifier{
		Rules: []Rule{
			{Marker: "Login failed", Verdict: Failed},
			{Marker: "Signon to", Verdict: Failed},
			{Marker: "completed successfully", Verdict: Succeeded},
		},
		DetailPrefixes: []string{"MSG", "CPF"},
	}
}

// Classify returns the verdict of the first rule whose marker occurs in line.
func (c Classifier) Classify(line string) Verdict {
	for _, r := range c.Rules {
		if r.Marker != "" && strings.Contains(line, r.Marker) {
			return r.Verdict
		}
	}
	return Undetermined
}

// Detail builds the diagnostic part of a failure message: the lines starting
// with a detail prefix joined by "; ", or else the first three lines.
func (c Classifier) Detail(lines []string) string {
	var diag []string
	for _, l := range lines {
		for _, p := range c.DetailPrefixes {
			if strings.HasPrefix(l, p) {
				diag = append(diag, l)
				break
			}
		}
	}
	if len(diag) > 0 {
		return strings.Join(diag, "; ")
	}
	return firstLines(lines, 3)
}

func firstLines(lines []string, n int) string {
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "; ")
}
