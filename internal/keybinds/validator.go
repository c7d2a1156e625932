package keybinds

import (
	"fmt"
	"strings"

	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// Validation issue types
const (
	IssueInvalid  = "invalid"
	IssueUnknown  = "unknown"
	IssueShadowed = "shadowed"
	IssueReserved = "reserved"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string
	Index   int // position in the config file, -1 for registry checks
	Combo   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("[%s] shortcut %d (%s): %s", e.Type, e.Index, e.Combo, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Combo, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys map normalized combos to the only action they should trigger
	reservedKeys map[string]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuit, // Force quit should always work
		},
	}
}

// ValidateConfig validates a configuration before applying it
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	// normalized combo -> index of the entry currently owning it
	seen := make(map[string]int)

	for i, e := range config.Shortcuts {
		normalized, ok := shortcut.Normalize(e.Combo)
		if !ok {
			result.Errors = append(result.Errors, ValidationError{
				Type:    IssueInvalid,
				Index:   i,
				Combo:   e.Combo,
				Message: "combo has no key",
			})
			continue
		}

		if err := ValidateAction(e.Action); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Type:    IssueUnknown,
				Index:   i,
				Combo:   normalized,
				Message: err.Error(),
			})
			continue
		}

		if prev, dup := seen[normalized]; dup {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    IssueShadowed,
				Index:   i,
				Combo:   normalized,
				Message: fmt.Sprintf("replaces shortcut %d (%s -> %s)", prev, config.Shortcuts[prev].Action, e.Action),
			})
		}
		seen[normalized] = i

		v.checkReserved(normalized, Action(e.Action), i, result)
	}

	return result
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	for _, b := range registry.ListBindings() {
		if !b.Action.IsKnown() {
			result.Errors = append(result.Errors, ValidationError{
				Type:    IssueUnknown,
				Index:   -1,
				Combo:   b.Combo,
				Message: fmt.Sprintf("unknown action %q", b.Action),
			})
		}
		v.checkReserved(b.Combo, b.Action, -1, result)
	}

	return result
}

// checkReserved warns when a reserved combo is bound to another action
func (v *Validator) checkReserved(combo string, action Action, index int, result *ValidationResult) {
	want, reserved := v.reservedKeys[combo]
	if !reserved || action == want {
		return
	}
	result.Warnings = append(result.Warnings, ValidationError{
		Type:    IssueReserved,
		Index:   index,
		Combo:   combo,
		Message: fmt.Sprintf("reserved key rebound from %s to %s", want, action),
	})
}

// FindConflicts lists every entry of config that replaces an earlier one
func FindConflicts(config *Config) []string {
	result := NewValidator().ValidateConfig(config)

	var conflicts []string
	for _, w := range result.Warnings {
		if w.Type == IssueShadowed {
			conflicts = append(conflicts, w.Error())
		}
	}

	return conflicts
}

// ValidateCombo checks if a combo string is valid
func ValidateCombo(combo string) error {
	if combo == "" {
		return fmt.Errorf("combo cannot be empty")
	}
	if _, ok := shortcut.Normalize(combo); !ok {
		return fmt.Errorf("modifier without key: %s", combo)
	}
	return nil
}

// ValidateAction checks if an action string is valid
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !Action(actionStr).IsKnown() {
		return fmt.Errorf("unknown action %q", actionStr)
	}
	return nil
}
