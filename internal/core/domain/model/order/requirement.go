package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Requirement is one entry of the questionnaire the buyer answers before the
// seller starts working. Entries are captured from the gig's requirement
// template at order creation and answered in a single submission.
type Requirement struct {
	id         string
	question   string
	required   bool
	withFile   bool
	answerText string
	answerFile string
	answered   bool
}

// NewRequirement creates an unanswered requirement entry.
func NewRequirement(id, question string, required, withFile bool) (Requirement, error) {
	if id == "" {
		return Requirement{}, errs.NewValueIsRequiredError("requirement id")
	}
	if question == "" {
		return Requirement{}, errs.NewValueIsRequiredError("requirement question")
	}

	return Requirement{
		id:       id,
		question: question,
		required: required,
		withFile: withFile,
	}, nil
}

// RestoreRequirement reconstructs a requirement entry from persistence.
func RestoreRequirement(id, question string, required, withFile bool,
	answerText, answerFile string, answered bool) (Requirement, error) {
	r, err := NewRequirement(id, question, required, withFile)
	if err != nil {
		return Requirement{}, err
	}

	r.answerText = answerText
	r.answerFile = answerFile
	r.answered = answered
	return r, nil
}

// ID returns the requirement's identifier within its order.
func (r Requirement) ID() string { return r.id }

// Question returns the question text shown to the buyer.
func (r Requirement) Question() string { return r.question }

// Required reports whether the entry must be answered before work starts.
func (r Requirement) Required() bool { return r.required }

// WithFile reports whether the entry asks for a file attachment.
func (r Requirement) WithFile() bool { return r.withFile }

// AnswerText returns the buyer's textual answer, if any.
func (r Requirement) AnswerText() string { return r.answerText }

// AnswerFile returns the URL of the uploaded answer file, if any.
func (r Requirement) AnswerFile() string { return r.answerFile }

// Answered reports whether the entry was answered.
func (r Requirement) Answered() bool { return r.answered }

// answer records the buyer's response and marks the entry answered.
func (r *Requirement) answer(text, fileURL string) {
	r.answerText = text
	r.answerFile = fileURL
	r.answered = true
}

// RequirementAnswer is the buyer's response to one requirement as it arrives
// for validation, before any file has been uploaded. HasFile signals that a
// file accompanies the answer and will be stored if validation passes.
type RequirementAnswer struct {
	RequirementID string
	Text          string
	HasFile       bool
}

// FulfilledAnswer is the buyer's response after its file (if any) has been
// uploaded; FileURL points at the stored file.
type FulfilledAnswer struct {
	RequirementID string
	Text          string
	FileURL       string
}

// validateAnswers checks every answer against the requirement list. It
// returns the ids of required requirements left without text or file, and an
// error for answers referencing unknown requirement ids.
func validateAnswers(requirements []Requirement, answers []RequirementAnswer) ([]string, error) {
	byID := make(map[string]RequirementAnswer, len(answers))
	for _, a := range answers {
		byID[a.RequirementID] = a
	}

	known := make(map[string]bool, len(requirements))
	var missing []string
	for _, r := range requirements {
		known[r.id] = true
		if !r.required {
			continue
		}
		a, ok := byID[r.id]
		if !ok || (a.Text == "" && !a.HasFile) {
			missing = append(missing, r.id)
		}
	}

	for _, a := range answers {
		if !known[a.RequirementID] {
			return nil, errs.NewValueIsInvalidErrorWithCause("requirement id is invalid",
				fmt.Errorf("%q does not reference a requirement of this order", a.RequirementID))
		}
	}

	return missing, nil
}
