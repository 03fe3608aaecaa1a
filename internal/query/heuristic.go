package query

import (
	"strings"

	"github.com/alexanderramin/vitals/internal/domain"
)

// IntentHelp is returned when no rule matches.
const IntentHelp = "help"

// HelpText is the fixed usage answer for unrecognized questions.
const HelpText = `I can answer questions about your sleep, readiness and activity history. ` +
	`Try "average sleep score last 30 days", "best readiness day", ` +
	`"worst activity day since 2024-01-01" or "total steps from 2024-01-01 to 2024-03-31".`

// Classification is the heuristic reading of a question: either a
// validated command tagged with its intent, the help sentinel, or a
// rejection when the question's own dates are unusable.
type Classification struct {
	Intent    string
	Command   *Command
	Rejection *Rejection
}

// IsHelp reports whether no rule matched.
func (c Classification) IsHelp() bool { return c.Intent == IntentHelp }

// signals are the keyword flags and metric targets found in a question.
// Matching is substring presence on the lowercased text.
type signals struct {
	text       string
	average    bool
	best       bool
	worst      bool
	stepsTotal bool
	sleep      bool
	readiness  bool
	activity   bool
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func readSignals(question string) signals {
	text := strings.ToLower(question)
	s := signals{
		text:       text,
		average:    containsAny(text, "average", "avg", "mean"),
		best:       containsAny(text, "best", "highest", "max"),
		worst:      containsAny(text, "worst", "lowest", "min"),
		stepsTotal: strings.Contains(text, "steps") && containsAny(text, "total", "sum"),
		sleep:      strings.Contains(text, "sleep"),
		readiness:  strings.Contains(text, "readiness"),
		activity:   containsAny(text, "activity", "steps"),
	}
	if !s.sleep && !s.readiness && !s.activity {
		switch {
		case strings.Contains(text, "steps"):
			s.activity = true
		case strings.Contains(text, "score"):
			// A bare "score" means readiness.
			s.readiness = true
		}
	}
	return s
}

// rule maps a matching question onto a candidate command. Rules are
// evaluated top to bottom and the first match wins.
type rule struct {
	intent string
	match  func(signals) bool
	build  func() Candidate
}

func scoreCandidate(op domain.Operation, table domain.Table) func() Candidate {
	return func() Candidate {
		return Candidate{Operation: string(op), Table: string(table), Field: string(domain.FieldScore)}
	}
}

var rules = []rule{
	{"average_sleep", func(s signals) bool { return s.average && s.sleep }, scoreCandidate(domain.OpAvg, domain.TableSleep)},
	{"average_readiness", func(s signals) bool { return s.average && s.readiness }, scoreCandidate(domain.OpAvg, domain.TableReadiness)},
	{"average_activity", func(s signals) bool { return s.average && s.activity }, scoreCandidate(domain.OpAvg, domain.TableActivity)},
	{"total_steps", func(s signals) bool { return s.stepsTotal }, func() Candidate {
		return Candidate{Operation: string(domain.OpSum), Table: string(domain.TableActivity), Field: string(domain.FieldSteps)}
	}},
	{"best_sleep", func(s signals) bool { return s.best && s.sleep }, scoreCandidate(domain.OpMax, domain.TableSleep)},
	{"worst_sleep", func(s signals) bool { return s.worst && s.sleep }, scoreCandidate(domain.OpMin, domain.TableSleep)},
	{"best_readiness", func(s signals) bool { return s.best && s.readiness }, scoreCandidate(domain.OpMax, domain.TableReadiness)},
	{"worst_readiness", func(s signals) bool { return s.worst && s.readiness }, scoreCandidate(domain.OpMin, domain.TableReadiness)},
	{"best_activity", func(s signals) bool { return s.best && s.activity }, scoreCandidate(domain.OpMax, domain.TableActivity)},
	{"worst_activity", func(s signals) bool { return s.worst && s.activity }, scoreCandidate(domain.OpMin, domain.TableActivity)},
}

// RuleIntents lists the heuristic intents in evaluation order.
func RuleIntents() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.intent
	}
	return out
}

// Classify maps a question and its extracted window onto a command. The
// built candidate goes through Validate like any other input.
func Classify(question string, window domain.DateRange) Classification {
	s := readSignals(question)
	for _, r := range rules {
		if !r.match(s) {
			continue
		}
		c := r.build()
		c.StartDate = window.StartString()
		c.EndDate = window.EndString()
		v := Validate(c)
		return Classification{Intent: r.intent, Command: v.Command, Rejection: v.Rejection}
	}
	return Classification{Intent: IntentHelp}
}
