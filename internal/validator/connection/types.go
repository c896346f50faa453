package connection

import "aansluitintake/internal/domain"

// Severity of a validation finding. Errors mark incomplete or malformed
// records; warnings are advisory. Neither blocks saving.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Result is one validation finding on a connection field.
type Result struct {
	Field    string   `json:"field"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Rule validates one aspect of a connection record.
type Rule interface {
	RuleKey() string
	RuleName() string
	Severity() Severity
	Validate(*domain.Connection) []Result
}

// Report groups findings per field for the review UI.
type Report struct {
	Errors   map[string]string `json:"errors"`
	Warnings map[string]string `json:"warnings"`
}

// Valid reports whether the record has no blocking errors. Saving is allowed
// either way; callers use this for the export confirmation flow.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// AllRules returns the full rule set in evaluation order.
func AllRules() []Rule {
	var rules []Rule
	for _, v := range RequiredFieldRules() {
		rules = append(rules, v)
	}
	for _, v := range FormatRules() {
		rules = append(rules, v)
	}
	for _, v := range WarningRules() {
		rules = append(rules, v)
	}
	return rules
}

// Validate runs every rule against the record and folds the findings into a
// per-field report. The first finding per field and severity wins.
func Validate(c *domain.Connection) Report {
	report := Report{
		Errors:   make(map[string]string),
		Warnings: make(map[string]string),
	}
	for _, rule := range AllRules() {
		for _, result := range rule.Validate(c) {
			switch result.Severity {
			case SeverityError:
				if _, ok := report.Errors[result.Field]; !ok {
					report.Errors[result.Field] = result.Message
				}
			case SeverityWarning:
				if _, ok := report.Warnings[result.Field]; !ok {
					report.Warnings[result.Field] = result.Message
				}
			}
		}
	}
	return report
}
