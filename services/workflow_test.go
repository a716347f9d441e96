package services

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusRules(t *testing.T) {
	// Everything short of approval stays editable.
	assert.True(t, CanEdit(StatusDraft))
	assert.True(t, CanEdit(StatusPendingReview))
	assert.True(t, CanEdit(StatusSubmitted))
	assert.True(t, CanEdit(StatusRevisionNeeded))
	assert.False(t, CanEdit(StatusApproved))

	// Deletion and resubmission only from revision_needed.
	assert.True(t, CanDelete(StatusRevisionNeeded))
	assert.False(t, CanDelete(StatusDraft))
	assert.False(t, CanDelete(StatusPendingReview))
	assert.False(t, CanDelete(StatusApproved))

	assert.True(t, CanResubmit(StatusRevisionNeeded))
	assert.False(t, CanResubmit(StatusPendingReview))
	assert.False(t, CanResubmit(StatusSubmitted))
	assert.False(t, CanResubmit(StatusApproved))

	// Batch eligibility.
	assert.True(t, SubmissionEligible(StatusDraft))
	assert.True(t, SubmissionEligible(StatusRevisionNeeded))
	assert.False(t, SubmissionEligible(StatusPendingReview))
	assert.False(t, SubmissionEligible(StatusApproved))
}

func TestSubmittedAliasesPendingReview(t *testing.T) {
	assert.True(t, IsUnderReview(StatusSubmitted))
	assert.True(t, IsUnderReview(StatusPendingReview))
	assert.False(t, IsUnderReview(StatusDraft))
	assert.False(t, IsUnderReview(StatusApproved))
	assert.False(t, IsUnderReview(StatusRevisionNeeded))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusDraft, StatusPendingReview, StatusSubmitted, StatusApproved, StatusRevisionNeeded} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("archived"))
	assert.False(t, IsValidStatus(""))
}

func TestAuthorizeMutation(t *testing.T) {
	creator := "user-1"

	assert.NoError(t, AuthorizeMutation("user-1", &creator))

	err := AuthorizeMutation("user-2", &creator)
	assert.ErrorIs(t, err, ErrNotCreator)

	// Records without a recorded creator are never mutable.
	assert.ErrorIs(t, AuthorizeMutation("user-1", nil), ErrNotCreator)
	empty := ""
	assert.ErrorIs(t, AuthorizeMutation("user-1", &empty), ErrNotCreator)
}

func TestSameDepartment(t *testing.T) {
	dept := "dept-1"
	other := "dept-2"

	assert.True(t, SameDepartment("dept-1", &dept))
	assert.False(t, SameDepartment("dept-1", &other))
	assert.False(t, SameDepartment("dept-1", nil))
	assert.False(t, SameDepartment("", &dept))
}

func TestGenerateProblemStatementCode(t *testing.T) {
	pattern := regexp.MustCompile(`^PS-\d{4}-\d{4}$`)
	yearPrefix := fmt.Sprintf("PS-%d-", time.Now().Year())

	for i := 0; i < 100; i++ {
		code := GenerateProblemStatementCode()
		assert.Regexp(t, pattern, code)
		assert.Contains(t, code, yearPrefix)
	}
}
