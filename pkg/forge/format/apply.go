package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Apply attaches rule to sheet. It holds no reference to the file afterwards.
func Apply(f *excelize.File, sheet string, rule models.FormattingRule) error {
	switch rule.Kind {
	case models.RuleColorScale:
		return applyColorScale(f, sheet, rule)
	case models.RuleDropdown:
		return applyDropdown(f, sheet, rule)
	case models.RuleDuplicateHighlight:
		style, err := highlightStyle(f, rule)
		if err != nil {
			return err
		}
		return f.SetConditionalFormat(sheet, rule.Range, []excelize.ConditionalFormatOptions{
			{Type: "duplicate", Criteria: "=", Format: &style},
		})
	case models.RuleCellHighlight:
		style, err := highlightStyle(f, rule)
		if err != nil {
			return err
		}
		return f.SetConditionalFormat(sheet, rule.Range, []excelize.ConditionalFormatOptions{
			{Type: "cell", Criteria: rule.Criteria, Value: rule.Value, Format: &style},
		})
	}
	return fmt.Errorf("%w: unknown rule kind %q", ErrInvalidRule, rule.Kind)
}

func applyColorScale(f *excelize.File, sheet string, rule models.FormattingRule) error {
	stops := rule.Stops
	if len(stops) < 2 || len(stops) > 3 {
		return &InvalidStopCountError{Count: len(stops)}
	}
	last := stops[len(stops)-1]
	opt := excelize.ConditionalFormatOptions{
		Type:     "2_color_scale",
		Criteria: "=",
		MinType:  "num",
		MinValue: formatValue(stops[0].Value),
		MinColor: stops[0].Color,
		MaxType:  "num",
		MaxValue: formatValue(last.Value),
		MaxColor: last.Color,
	}
	if len(stops) == 3 {
		opt.Type = "3_color_scale"
		opt.MidType = "num"
		opt.MidValue = formatValue(stops[1].Value)
		opt.MidColor = stops[1].Color
	}
	return f.SetConditionalFormat(sheet, rule.Range, []excelize.ConditionalFormatOptions{opt})
}

func applyDropdown(f *excelize.File, sheet string, rule models.FormattingRule) error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = rule.Range
	if err := dv.SetDropList(rule.Values); err != nil {
		return fmt.Errorf("dropdown %s: %w", rule.Range, err)
	}
	dv.SetError(excelize.DataValidationErrorStyleStop, "Invalid entry",
		"Choose one of: "+strings.Join(rule.Values, ", "))
	return f.AddDataValidation(sheet, dv)
}

func highlightStyle(f *excelize.File, rule models.FormattingRule) (int, error) {
	style := &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{rule.Fill}, Pattern: 1},
	}
	if rule.FontColor != "" {
		style.Font = &excelize.Font{Color: rule.FontColor}
	}
	return f.NewConditionalStyle(style)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
