package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Problem statement workflow statuses. "submitted" is the legacy label written
// by batch submission and counts as pending_review in aggregates.
const (
	StatusDraft          = "draft"
	StatusPendingReview  = "pending_review"
	StatusSubmitted      = "submitted"
	StatusApproved       = "approved"
	StatusRevisionNeeded = "revision_needed"
)

// Local authorization denials. These are computed before any database write
// is attempted and surface as 403 responses with the error text as message.
var (
	ErrNotCreator        = errors.New("only the creator can modify this problem statement")
	ErrNoDepartment      = errors.New("your account has no department assigned")
	ErrStatusNotEditable = errors.New("approved problem statements cannot be edited")
	ErrNotDeletable      = errors.New("only problem statements needing revision can be deleted")
	ErrNotResubmittable  = errors.New("only problem statements needing revision can be resubmitted")
)

// IsValidStatus reports whether s is one of the known workflow statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusSubmitted, StatusApproved, StatusRevisionNeeded:
		return true
	}
	return false
}

// IsUnderReview reports whether the status counts as waiting on the
// institution reviewer. submitted and pending_review are interchangeable here.
func IsUnderReview(s string) bool {
	return s == StatusPendingReview || s == StatusSubmitted
}

// CanEdit reports whether a problem statement in the given status may still
// be edited by its creator. Everything short of approval stays editable.
func CanEdit(status string) bool {
	return status != StatusApproved
}

// CanDelete reports whether the status permits deletion.
func CanDelete(status string) bool {
	return status == StatusRevisionNeeded
}

// CanResubmit reports whether the status permits resubmission to review.
func CanResubmit(status string) bool {
	return status == StatusRevisionNeeded
}

// SubmissionEligible reports whether the status qualifies the record for
// inclusion in a submission batch.
func SubmissionEligible(status string) bool {
	return status == StatusDraft || status == StatusRevisionNeeded
}

// AuthorizeMutation checks that the acting user is the record's creator.
// A record with no recorded creator is never mutable through this API.
func AuthorizeMutation(actorID string, createdBy *string) error {
	if createdBy == nil || *createdBy == "" || *createdBy != actorID {
		return ErrNotCreator
	}
	return nil
}

// SameDepartment checks the read-scoping rule: records outside the actor's
// department are treated as not found.
func SameDepartment(actorDeptID string, recordDeptID *string) bool {
	if actorDeptID == "" || recordDeptID == nil {
		return false
	}
	return *recordDeptID == actorDeptID
}

// GenerateProblemStatementCode produces a readable code of the form
// PS-<year>-<4 digits>. Codes are not guaranteed unique; the unique index on
// problem_statements.problem_statement_id is the final arbiter and a
// collision surfaces as an insert error for the user to retry.
func GenerateProblemStatementCode() string {
	year := time.Now().Year()
	suffix := 1000 + rand.Intn(9000)
	return fmt.Sprintf("PS-%d-%04d", year, suffix)
}
