package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedcu/rotacheck/internal/entity"
)

func hardDescriptor(id entity.HardConstraintID) Descriptor {
	return Descriptor{ID: string(id), Name: string(id), SeverityClass: entity.SeverityClassHard}
}

func softDescriptor(id entity.SoftConstraintID) Descriptor {
	return Descriptor{ID: string(id), Name: string(id), SeverityClass: entity.SeverityClassSoft}
}

func TestNewRegistry_HasSixHardAndElevenSoftSeverityEntries(t *testing.T) {
	entries := NewRegistry().Entries()
	a := assert.New(t)
	a.Len(entries, 17)

	hardCount, softCount := 0, 0
	for _, d := range entries {
		if d.IsHard() {
			hardCount++
		} else {
			softCount++
		}
	}
	// monthly-night is registered with SeverityClassSoft, so the
	// SeverityClassHard count is six, not seven.
	a.Equal(6, hardCount)
	a.Equal(11, softCount)
	a.Equal(string(entity.ConstraintShiftOrder), entries[0].ID, "registry order mirrors spec table order")
}

func TestEnabled_HardConstraintRespectsExplicitToggle(t *testing.T) {
	cfg := entity.DefaultConstraintConfig()
	cfg.EnabledConstraints[entity.ConstraintStaffing] = false

	assert.False(t, Enabled(hardDescriptor(entity.ConstraintStaffing), cfg))
}

func TestEnabled_HardConstraintDefaultsTrueWhenUnset(t *testing.T) {
	cfg := entity.ConstraintConfig{}
	assert.True(t, Enabled(hardDescriptor(entity.ConstraintStaffing), cfg))
}

func TestEnabled_SoftConstraintRespectsParams(t *testing.T) {
	cfg := entity.DefaultConstraintConfig()
	cfg.SoftConstraints[entity.SoftRestClustering] = entity.SoftConstraintParams{Enabled: false}

	assert.False(t, Enabled(softDescriptor(entity.SoftRestClustering), cfg))
}

func TestEffectiveSeverity_HardConstraintDefaultsToError(t *testing.T) {
	cfg := entity.DefaultConstraintConfig()
	assert.Equal(t, entity.SeverityError, EffectiveSeverity(hardDescriptor(entity.ConstraintStaffing), cfg))
}

func TestEffectiveSeverity_HardConstraintDowngradedToWarning(t *testing.T) {
	cfg := entity.DefaultConstraintConfig()
	cfg.ConstraintSeverity[entity.ConstraintStaffing] = entity.SeverityClassSoft

	assert.Equal(t, entity.SeverityWarning, EffectiveSeverity(hardDescriptor(entity.ConstraintStaffing), cfg))
}

func TestEffectiveSeverity_JuhuIgnoresDowngradeOutsideConfigurableProfile(t *testing.T) {
	cfg := entity.DefaultConstraintConfig()
	cfg.ConstraintSeverity[entity.ConstraintJuhu] = entity.SeverityClassSoft

	assert.Equal(t, entity.SeverityError, EffectiveSeverity(hardDescriptor(entity.ConstraintJuhu), cfg),
		"juhu stays an error unless the jurisdiction profile explicitly permits downgrading it")
}

func TestEffectiveSeverity_JuhuHonorsDowngradeUnderConfigurableProfile(t *testing.T) {
	cfg := entity.DefaultConstraintConfig()
	cfg.JurisdictionProfile = entity.JurisdictionConfigurableJuhu
	cfg.ConstraintSeverity[entity.ConstraintJuhu] = entity.SeverityClassSoft

	assert.Equal(t, entity.SeverityWarning, EffectiveSeverity(hardDescriptor(entity.ConstraintJuhu), cfg))
}

func TestEffectiveSeverity_MonthlyNightAlwaysWarning(t *testing.T) {
	cfg := entity.DefaultConstraintConfig()
	d := Descriptor{ID: string(entity.ConstraintMonthlyNight), SeverityClass: entity.SeverityClassSoft}

	assert.Equal(t, entity.SeverityWarning, EffectiveSeverity(d, cfg),
		"monthly-night is soft regardless of the toggle, per the documented resolution")
}

func TestEffectiveSeverity_SoftConstraintAlwaysWarning(t *testing.T) {
	cfg := entity.DefaultConstraintConfig()
	assert.Equal(t, entity.SeverityWarning, EffectiveSeverity(softDescriptor(entity.SoftRestClustering), cfg))
}
