package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChoiceList(t *testing.T) {
	q := Question{Choices: "alif, ba ,ta"}
	assert.Equal(t, []string{"alif", "ba", "ta"}, q.ChoiceList())

	q = Question{Choices: "one,,two,"}
	assert.Equal(t, []string{"one", "two"}, q.ChoiceList())

	q = Question{Choices: ""}
	assert.Empty(t, q.ChoiceList())
}

func TestCorrectChoiceText(t *testing.T) {
	q := Question{Choices: "alif,ba,ta", CorrectAnswer: 2}
	assert.Equal(t, "ba", q.CorrectChoiceText())

	q.CorrectAnswer = 0
	assert.Equal(t, "", q.CorrectChoiceText())

	q.CorrectAnswer = 4
	assert.Equal(t, "", q.CorrectChoiceText())
}

func TestRoleOf(t *testing.T) {
	assert.Equal(t, RoleStudent, RoleOf(nil))
	assert.Equal(t, RoleStudent, RoleOf(&User{}))
	assert.Equal(t, RoleAdmin, RoleOf(&User{IsStaff: true}))
	assert.Equal(t, RoleAdmin, RoleOf(&User{Profile: &Profile{Role: RoleAdmin}}))
	assert.Equal(t, RoleStudent, RoleOf(&User{Profile: &Profile{Role: RoleStudent}}))
	// Profile says student, staff flag still grants admin.
	assert.Equal(t, RoleAdmin, RoleOf(&User{IsStaff: true, Profile: &Profile{Role: RoleStudent}}))
}

func TestLessonVisibleTo(t *testing.T) {
	visible := Lesson{IsHidden: false}
	hidden := Lesson{IsHidden: true}

	assert.True(t, visible.VisibleTo(RoleStudent))
	assert.True(t, visible.VisibleTo(RoleAdmin))
	assert.False(t, hidden.VisibleTo(RoleStudent))
	assert.True(t, hidden.VisibleTo(RoleAdmin))
}

func TestReviewAllowed(t *testing.T) {
	open := Attempt{Test: Test{PreventReview: false}}
	assert.True(t, open.ReviewAllowed())

	blocked := Attempt{Test: Test{PreventReview: true}}
	assert.False(t, blocked.ReviewAllowed())

	overridden := Attempt{Test: Test{PreventReview: true}, ReviewEnabled: true}
	assert.True(t, overridden.ReviewAllowed())
}
