package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Year-level encoding: -2 and -1 are the two pre-prep early-learning years,
// 0 is Prep, 1..12 are school years. Outside [-2, 12] no fees apply.
const (
	MinYearLevel = -2
	MaxYearLevel = 12
)

// Child anchors a schooling timeline: the year level the child is in during a
// specific calendar year. Every other year's level is derived from that pair.
type Child struct {
	ID               string `yaml:"id" json:"id"`
	Name             string `yaml:"name" json:"name"`
	CurrentYearLevel int    `yaml:"current_year_level" json:"current_year_level"`
	CurrentYear      int    `yaml:"current_year" json:"current_year"`
}

// YearLevelIn returns the child's year level in the given calendar year.
func (c Child) YearLevelIn(calendarYear int) int {
	return c.CurrentYearLevel + (calendarYear - c.CurrentYear)
}

// InSchoolIn reports whether the child attracts school fees in the given
// calendar year.
func (c Child) InSchoolIn(calendarYear int) bool {
	level := c.YearLevelIn(calendarYear)
	return level >= MinYearLevel && level <= MaxYearLevel
}

// YearLevelLabel names a year level the way school communications do.
func YearLevelLabel(level int) string {
	switch {
	case level == -2:
		return "ELP3"
	case level == -1:
		return "ELP4"
	case level == 0:
		return "Prep"
	default:
		return fmt.Sprintf("Year %d", level)
	}
}

// EducationFees holds per-band annual fees quoted in BaseYear dollars. Fees
// inflate from BaseYear to the forecast year at the configured inflation rate.
type EducationFees struct {
	ELP3        decimal.Decimal `yaml:"elp3" json:"elp3"`
	ELP4        decimal.Decimal `yaml:"elp4" json:"elp4"`
	PrepToYear4 decimal.Decimal `yaml:"prep_to_year_4" json:"prep_to_year_4"`
	Year5And6   decimal.Decimal `yaml:"year_5_and_6" json:"year_5_and_6"`
	Year7To9    decimal.Decimal `yaml:"year_7_to_9" json:"year_7_to_9"`
	Year10To12  decimal.Decimal `yaml:"year_10_to_12" json:"year_10_to_12"`
	BaseYear    int             `yaml:"base_year" json:"base_year"`
}

// FeeForYearLevel returns the base-year annual fee for a year level, zero
// outside the schooling range.
func (ef EducationFees) FeeForYearLevel(level int) decimal.Decimal {
	switch {
	case level < MinYearLevel || level > MaxYearLevel:
		return decimal.Zero
	case level == -2:
		return ef.ELP3
	case level == -1:
		return ef.ELP4
	case level <= 4:
		return ef.PrepToYear4
	case level <= 6:
		return ef.Year5And6
	case level <= 9:
		return ef.Year7To9
	default:
		return ef.Year10To12
	}
}
