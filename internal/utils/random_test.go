package utils_test

import (
	"testing"

	"github.com/gastrohub-dev/gastrohub/backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := utils.GenerateRandomOTP()
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestGenerateRandomShift_WindowIsValid(t *testing.T) {
	for i := 0; i < 100; i++ {
		shift := utils.GenerateRandomShift(1, 2)
		assert.True(t, shift.StartTime.Before(shift.EndTime))
		// the generator keeps shifts inside one calendar date
		assert.Equal(t, shift.StartTime.Day(), shift.EndTime.Day())
	}
}

func TestGenerateRandomAbsence_DatesOrdered(t *testing.T) {
	for i := 0; i < 100; i++ {
		absence := utils.GenerateRandomAbsence(1, 2)
		assert.False(t, absence.EndDate.Before(absence.StartDate))
	}
}
