package order

import (
	"fmt"
	"time"

	"orders/internal/pkg/errs"
)

// Approval is the buyer's verdict on one delivered-work entry.
// A freshly delivered entry is AwaitingReview; the buyer resolves it exactly
// once, to Approved or RevisionRequested.
type Approval int

const (
	// AwaitingReview means the buyer has not responded to the delivery yet.
	AwaitingReview Approval = iota

	// Approved means the buyer accepted the delivered work.
	Approved

	// RevisionRequested means the buyer sent the work back for revision.
	RevisionRequested
)

// String returns the human-readable name of the approval state.
func (a Approval) String() string {
	switch a {
	case AwaitingReview:
		return "AwaitingReview"
	case Approved:
		return "Approved"
	case RevisionRequested:
		return "RevisionRequested"
	default:
		return "Unknown"
	}
}

// Validate checks if the Approval value is valid.
func (a Approval) Validate() error {
	if a < AwaitingReview || a > RevisionRequested {
		return errs.NewValueIsInvalidErrorWithCause("approval is invalid",
			fmt.Errorf("%d is not a valid approval", a))
	}
	return nil
}

// StoredFile is the record the file store returns for one uploaded file.
// It is an immutable metadata snapshot; the service never re-reads the file
// contents.
type StoredFile struct {
	DownloadURL string
	SecureURL   string
	FileType    string
	FileName    string
	PublicID    string
	FileSize    int64
}

// Delivery is one delivered-work submission: the seller's message, the
// uploaded files, and the buyer's approval verdict.
type Delivery struct {
	message     string
	files       []StoredFile
	approval    Approval
	deliveredAt time.Time
	respondedAt *time.Time
}

// NewDelivery creates a delivered-work entry awaiting the buyer's review.
// At least one file is required: a delivery without work attached is
// meaningless.
func NewDelivery(message string, files []StoredFile, deliveredAt time.Time) (Delivery, error) {
	if len(files) == 0 {
		return Delivery{}, errs.NewValueIsRequiredError("delivery files")
	}
	if deliveredAt.IsZero() {
		return Delivery{}, errs.NewValueIsRequiredError("deliveredAt")
	}

	return Delivery{
		message:     message,
		files:       append([]StoredFile(nil), files...),
		approval:    AwaitingReview,
		deliveredAt: deliveredAt,
	}, nil
}

// RestoreDelivery reconstructs a delivered-work entry from persistence.
func RestoreDelivery(message string, files []StoredFile, approval Approval,
	deliveredAt time.Time, respondedAt *time.Time) (Delivery, error) {
	d, err := NewDelivery(message, files, deliveredAt)
	if err != nil {
		return Delivery{}, err
	}
	if err = approval.Validate(); err != nil {
		return Delivery{}, err
	}

	d.approval = approval
	d.respondedAt = respondedAt
	return d, nil
}

// Message returns the seller's delivery message.
func (d Delivery) Message() string { return d.message }

// Files returns a copy of the delivered file records.
func (d Delivery) Files() []StoredFile {
	return append([]StoredFile(nil), d.files...)
}

// Approval returns the buyer's verdict on this entry.
func (d Delivery) Approval() Approval { return d.approval }

// DeliveredAt returns when the seller submitted the entry.
func (d Delivery) DeliveredAt() time.Time { return d.deliveredAt }

// RespondedAt returns when the buyer resolved the entry, or nil while it is
// awaiting review.
func (d Delivery) RespondedAt() *time.Time { return d.respondedAt }

// IsResolved reports whether the buyer has responded to this entry.
func (d Delivery) IsResolved() bool {
	return d.approval != AwaitingReview
}

func (d *Delivery) approve(now time.Time) {
	d.approval = Approved
	d.respondedAt = &now
}

func (d *Delivery) requestRevision(now time.Time) {
	d.approval = RevisionRequested
	d.respondedAt = &now
}
