// Package validation checks request bodies before they reach a store.
//
// A validator is nothing more than a list of rules per field:
//
//	Rule{Check: notBlank, Message: "title is required"}
//
// Field runs the rules for one value and returns the messages of the rules
// that failed. The request validators (Register, Login, Task, ...) call Field
// once per field and concatenate the results, so a single request can report
// several field errors at once. All functions here are pure: no I/O, no
// globals that change after init.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/task-manager/internal/auth"
	"github.com/sakif/task-manager/internal/model"
)

// Field limits.
const (
	MinNameLength        = 3
	MinPasswordLength    = 8
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Rule is one predicate over a field value plus the message reported when
// the predicate returns false.
type Rule struct {
	Check   func(string) bool
	Message string
}

// Field evaluates rules against value in order and returns the messages of
// the failed rules. With stopOnFirst set, evaluation ends at the first
// failure (so "email is required" is not followed by "email is invalid").
func Field(value string, stopOnFirst bool, rules ...Rule) []string {
	var msgs []string
	for _, r := range rules {
		if r.Check(value) {
			continue
		}
		msgs = append(msgs, r.Message)
		if stopOnFirst {
			break
		}
	}
	return msgs
}

// validate is only used for the email syntax check. validator.Validate is
// safe for concurrent use and caches nothing per call for Var.
var validate = validator.New()

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func minRunes(n int) func(string) bool {
	return func(s string) bool { return utf8.RuneCountInString(s) >= n }
}

func maxRunes(n int) func(string) bool {
	return func(s string) bool { return utf8.RuneCountInString(s) <= n }
}

// maxBytes counts bytes, not runes: "é" uses two of bcrypt's 72.
func maxBytes(n int) func(string) bool {
	return func(s string) bool { return len(s) <= n }
}

func validEmail(s string) bool {
	return validate.Var(s, "email") == nil
}

func containsRune(pred func(rune) bool) func(string) bool {
	return func(s string) bool { return strings.IndexFunc(s, pred) >= 0 }
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func validPriority(s string) bool {
	_, ok := model.ParsePriority(s)
	return ok
}

func validStatus(s string) bool {
	_, ok := model.ParseStatus(s)
	return ok
}

var (
	nameRules = []Rule{
		{notBlank, "name is required"},
		{minRunes(MinNameLength), fmt.Sprintf("name must be at least %d characters", MinNameLength)},
	}

	emailRules = []Rule{
		{notBlank, "email is required"},
		{validEmail, "email is invalid"},
	}

	// Password strength rules all run so the client sees every missing
	// character class in one response.
	passwordRules = []Rule{
		{minRunes(MinPasswordLength), fmt.Sprintf("password must be at least %d characters", MinPasswordLength)},
		{maxBytes(auth.MaxPasswordBytes), fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes)},
		{containsRune(unicode.IsUpper), "password must contain at least one uppercase letter"},
		{containsRune(unicode.IsLower), "password must contain at least one lowercase letter"},
		{containsRune(unicode.IsDigit), "password must contain at least one digit"},
		{containsRune(isSpecial), "password must contain at least one special character"},
	}

	loginPasswordRules = []Rule{
		{notBlank, "password is required"},
	}

	titleRules = []Rule{
		{notBlank, "title is required"},
		{maxRunes(MaxTitleLength), fmt.Sprintf("title must be at most %d characters", MaxTitleLength)},
	}

	descriptionRules = []Rule{
		{maxRunes(MaxDescriptionLength), fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength)},
	}

	priorityRules = []Rule{
		{notBlank, "priority is required"},
		{validPriority, "priority must be one of: Baixa, Media, Alta"},
	}

	statusRules = []Rule{
		{notBlank, "status is required"},
		{validStatus, "status must be one of: Pendente, EmAndamento, Concluida"},
	}
)

// Register validates a registration request.
func Register(name, email, password string) []string {
	var msgs []string
	msgs = append(msgs, Field(name, true, nameRules...)...)
	msgs = append(msgs, Field(email, true, emailRules...)...)
	msgs = append(msgs, Field(password, false, passwordRules...)...)
	return msgs
}

// Login validates a login request. The password is only checked for
// presence; strength rules apply at registration.
func Login(email, password string) []string {
	var msgs []string
	msgs = append(msgs, Field(email, true, emailRules...)...)
	msgs = append(msgs, Field(password, true, loginPasswordRules...)...)
	return msgs
}

// Task validates the fields of a create or full-edit request.
func Task(title, description, priority, status string) []string {
	var msgs []string
	msgs = append(msgs, Field(title, true, titleRules...)...)
	msgs = append(msgs, Field(description, true, descriptionRules...)...)
	msgs = append(msgs, Priority(priority)...)
	msgs = append(msgs, Status(status)...)
	return msgs
}

// Priority validates a priority value on its own.
func Priority(priority string) []string {
	return Field(priority, true, priorityRules...)
}

// Status validates a status value on its own.
func Status(status string) []string {
	return Field(status, true, statusRules...)
}
