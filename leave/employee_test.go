package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/leave-engine/leave"
)

func TestValidateEmployee_ValidForm(t *testing.T) {
	asOf := day(2025, time.June, 2)
	res := leave.ValidateEmployee("Ada Lovelace", "ada@example.com", "Engineering",
		day(2025, time.May, 1), asOf)

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateEmployee_AllFindingsCollected(t *testing.T) {
	// GIVEN: A form where every field is wrong
	// WHEN: Validating
	// THEN: Every violation is reported together

	asOf := day(2025, time.June, 2)
	res := leave.ValidateEmployee(" a ", "not-an-email", "x",
		day(2025, time.July, 1), asOf)

	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Name must be at least 2 characters long",
		"Invalid email format",
		"Department must be at least 2 characters long",
		"Joining date cannot be in the future",
	}, res.Errors)
}

func TestValidateEmployee_JoiningToday_Allowed(t *testing.T) {
	asOf := day(2025, time.June, 2)
	res := leave.ValidateEmployee("Bo Li", "bo@example.com", "HR", asOf, asOf)
	assert.True(t, res.Valid)
}

func TestValidateEmployee_EmailNeedsAtAndDot(t *testing.T) {
	asOf := day(2025, time.June, 2)

	res := leave.ValidateEmployee("Bo Li", "bo@examplecom", "HR", asOf, asOf)
	assert.Contains(t, res.Errors, "Invalid email format")

	res = leave.ValidateEmployee("Bo Li", "bo.example.com", "HR", asOf, asOf)
	assert.Contains(t, res.Errors, "Invalid email format")
}
