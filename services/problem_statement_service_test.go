package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ps-dashboard-api/models"
)

func TestDeleteCascadeRemovesDependentsThenParent(t *testing.T) {
	steps := []*queryStep{
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `problem_statement_attachments`"), result: scriptedResult{rowsAffected: 2}},
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `problem_statement_messages`"), result: scriptedResult{rowsAffected: 4}},
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `problem_statement_reviews`"), result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `problem_statement_alerts`"), result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `submission_batch_items`"), result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `problem_statements`"), result: scriptedResult{rowsAffected: 1}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewProblemStatementService(db)
	require.NoError(t, svc.DeleteCascade("ps-1"))
	require.NoError(t, state.verifyComplete())
}

func TestDeleteCascadeAbortsOnDependentFailure(t *testing.T) {
	// The review deletion fails; the parent row must survive. Any attempt to
	// issue the remaining deletes would surface as an unexpected query.
	steps := []*queryStep{
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `problem_statement_attachments`"), result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `problem_statement_messages`"), result: scriptedResult{rowsAffected: 1}},
		{kind: kindExec, pattern: regexp.MustCompile("DELETE FROM `problem_statement_reviews`"), err: errors.New("lock wait timeout")},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewProblemStatementService(db)
	err := svc.DeleteCascade("ps-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reviews")
	require.NoError(t, state.verifyComplete())
}

func revisionNeededRecord(creator string) *models.ProblemStatement {
	status := StatusRevisionNeeded
	return &models.ProblemStatement{
		ID:        "ps-1",
		Status:    &status,
		CreatedBy: &creator,
	}
}

func TestResubmitFromRevisionNeeded(t *testing.T) {
	steps := []*queryStep{
		{kind: kindExec, pattern: regexp.MustCompile("UPDATE `problem_statements` SET"), result: scriptedResult{rowsAffected: 1}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewProblemStatementService(db)
	ps := revisionNeededRecord("u1")
	now := time.Now()

	changed, err := svc.Resubmit(ps, "u1", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusPendingReview, StatusOf(ps))
	require.NotNil(t, ps.LastUpdated)
	assert.Equal(t, now, *ps.LastUpdated)
	require.NoError(t, state.verifyComplete())
}

func TestResubmitDeniedForNonCreator(t *testing.T) {
	// No steps scripted: a denial must not touch the database.
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewProblemStatementService(db)
	ps := revisionNeededRecord("u1")

	changed, err := svc.Resubmit(ps, "u2", time.Now())
	assert.ErrorIs(t, err, ErrNotCreator)
	assert.False(t, changed)
	assert.Equal(t, StatusRevisionNeeded, StatusOf(ps))
	require.NoError(t, state.verifyComplete())
}

func TestResubmitIsNoopWhenAlreadyUnderReview(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewProblemStatementService(db)

	for _, status := range []string{StatusPendingReview, StatusSubmitted} {
		s := status
		creator := "u1"
		ps := &models.ProblemStatement{ID: "ps-1", Status: &s, CreatedBy: &creator}

		changed, err := svc.Resubmit(ps, "u1", time.Now())
		assert.NoError(t, err, status)
		assert.False(t, changed, status)
		assert.Equal(t, status, StatusOf(ps))
	}
	require.NoError(t, state.verifyComplete())
}

func TestResubmitRejectedFromOtherStatuses(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewProblemStatementService(db)

	for _, status := range []string{StatusDraft, StatusApproved} {
		s := status
		creator := "u1"
		ps := &models.ProblemStatement{ID: "ps-1", Status: &s, CreatedBy: &creator}

		changed, err := svc.Resubmit(ps, "u1", time.Now())
		assert.ErrorIs(t, err, ErrNotResubmittable, status)
		assert.False(t, changed, status)
	}
	require.NoError(t, state.verifyComplete())
}
