package configvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedcu/rotacheck/internal/entity"
	"github.com/schedcu/rotacheck/internal/validation"
)

func baseConfig() entity.ConstraintConfig {
	cfg := entity.DefaultConstraintConfig()
	cfg.WeekdayStaffing = entity.DailyStaffing{
		Day:     entity.StaffRange{Min: 2},
		Evening: entity.StaffRange{Min: 2},
		Night:   entity.StaffRange{Min: 1},
	}
	cfg.WeekendStaffing = cfg.WeekdayStaffing
	return cfg
}

func TestValidate_ZeroStaffReturnsErrorOnly(t *testing.T) {
	result := Validate(0, baseConfig())
	assert.False(t, result.IsValid())
	assert.Equal(t, 1, result.ErrorCount())
	assert.Len(t, result.MessagesByCode(validation.CodeNoStaff), 1)
}

func TestValidate_SufficientStaffProducesNoMessages(t *testing.T) {
	cfg := baseConfig()
	// required = 2+2+1 = 5 for both weekday and weekend; 10 staff clears it.
	result := Validate(10, cfg)
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Messages)
}

func TestValidate_InsufficientDailyCoverageWarnsPerLabel(t *testing.T) {
	cfg := baseConfig()
	// required 5 per day, only 3 staff available.
	result := Validate(3, cfg)
	assert.True(t, result.IsValid(), "staffing infeasibility is a warning, not an error")
	assert.Len(t, result.MessagesByCode(validation.CodeStaffingInfeasible), 2, "both weekday and weekend labels warn")
}

func TestValidate_NightQuotaShortfallWarns(t *testing.T) {
	cfg := baseConfig()
	cfg.WeekdayStaffing.Night.Min = 3
	cfg.MonthlyNightsRequired = 1
	// requiredNights = 3*28 = 84; with 5 staff, availableNightCapacity = 5*1 = 5.
	result := Validate(5, cfg)
	assert.Len(t, result.MessagesByCode(validation.CodeNightQuotaInfeasible), 1)
}

func TestValidate_InvalidMaxConsecutiveNightsIsAnError(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxConsecutiveNights = 0
	result := Validate(10, cfg)
	assert.False(t, result.IsValid())
	assert.Len(t, result.MessagesByCode(validation.CodeInvalidMaxConsecutive), 1)
}
