// Package format plans conditional formatting and data validation rules and
// applies them to excelize worksheets.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Named colors accepted in templates. Scale colors follow Excel's default
// red / yellow / green scale; fills follow its "good / neutral / bad" styles.
var namedColors = map[string]string{
	"red":         "#F8696B",
	"yellow":      "#FFEB84",
	"green":       "#63BE7B",
	"white":       "#FFFFFF",
	"light-red":   "#FFC7CE",
	"light-amber": "#FFEB9C",
	"light-green": "#C6EFCE",
	"dark-red":    "#9C0006",
	"dark-amber":  "#9C5700",
	"dark-green":  "#006100",
}

var hexColor = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

var criteria = map[string]string{
	"=":  "==",
	"==": "==",
	"<>": "!=",
	"!=": "!=",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
}

// NormalizeColor returns c as "#RRGGBB".
func NormalizeColor(c string) (string, error) {
	if v, ok := namedColors[strings.ToLower(c)]; ok {
		return v, nil
	}
	if !hexColor.MatchString(c) {
		return "", fmt.Errorf("%w: color %q is neither #RRGGBB nor a known name", ErrInvalidRule, c)
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(c, "#")), nil
}

// PlanColorScale validates stops and returns a color scale rule for rng.
// Stop values must be non-decreasing.
func PlanColorScale(rng string, stops []models.ColorStop) (models.FormattingRule, error) {
	if err := checkRange(rng); err != nil {
		return models.FormattingRule{}, err
	}
	if len(stops) < 2 || len(stops) > 3 {
		return models.FormattingRule{}, &InvalidStopCountError{Count: len(stops)}
	}

	out := make([]models.ColorStop, len(stops))
	for i, s := range stops {
		if i > 0 && s.Value < stops[i-1].Value {
			return models.FormattingRule{}, &InvalidStopOrderError{Index: i, Previous: stops[i-1].Value, Value: s.Value}
		}
		color, err := NormalizeColor(s.Color)
		if err != nil {
			return models.FormattingRule{}, err
		}
		out[i] = models.ColorStop{Value: s.Value, Color: color}
	}
	return models.FormattingRule{Range: rng, Kind: models.RuleColorScale, Stops: out}, nil
}

// PlanDropdown returns a list validation for rng. Repeated values are
// dropped; the first occurrence keeps its position.
func PlanDropdown(rng string, allowed []string) (models.FormattingRule, error) {
	if err := checkRange(rng); err != nil {
		return models.FormattingRule{}, err
	}
	seen := make(map[string]bool, len(allowed))
	var values []string
	for _, v := range allowed {
		if v == "" || seen[v] {
			continue
		}
		if strings.Contains(v, ",") {
			return models.FormattingRule{}, fmt.Errorf("%w: dropdown value %q contains a comma", ErrInvalidRule, v)
		}
		seen[v] = true
		values = append(values, v)
	}
	if len(values) == 0 {
		return models.FormattingRule{}, fmt.Errorf("%w: dropdown for %s has no values", ErrInvalidRule, rng)
	}
	return models.FormattingRule{Range: rng, Kind: models.RuleDropdown, Values: values}, nil
}

// PlanDuplicateHighlight fills repeated values in rng.
func PlanDuplicateHighlight(rng, fill string) (models.FormattingRule, error) {
	if err := checkRange(rng); err != nil {
		return models.FormattingRule{}, err
	}
	if fill == "" {
		fill = "light-red"
	}
	c, err := NormalizeColor(fill)
	if err != nil {
		return models.FormattingRule{}, err
	}
	return models.FormattingRule{Range: rng, Kind: models.RuleDuplicateHighlight, Fill: c}, nil
}

// PlanCellHighlight fills cells in rng for which "cell op value" holds.
func PlanCellHighlight(rng, op, value, fill, fontColor string) (models.FormattingRule, error) {
	if err := checkRange(rng); err != nil {
		return models.FormattingRule{}, err
	}
	crit, ok := criteria[op]
	if !ok {
		return models.FormattingRule{}, fmt.Errorf("%w: unsupported comparison %q", ErrInvalidRule, op)
	}
	if value == "" {
		return models.FormattingRule{}, fmt.Errorf("%w: comparison value for %s is empty", ErrInvalidRule, rng)
	}
	c, err := NormalizeColor(fill)
	if err != nil {
		return models.FormattingRule{}, err
	}
	rule := models.FormattingRule{Range: rng, Kind: models.RuleCellHighlight, Criteria: crit, Value: value, Fill: c}
	if fontColor != "" {
		if rule.FontColor, err = NormalizeColor(fontColor); err != nil {
			return models.FormattingRule{}, err
		}
	}
	return rule, nil
}

func checkRange(rng string) error {
	if rng == "" {
		return fmt.Errorf("%w: empty range", ErrInvalidRule)
	}
	return nil
}
