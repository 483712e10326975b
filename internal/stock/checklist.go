package stock

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

// DefaultTools is the equipment every service vehicle is checked for when no
// list is configured.
var DefaultTools = []string{
	"Hot stick",
	"Voltage detector",
	"Insulated gloves",
	"Safety helmet",
	"Safety harness",
	"Grounding set",
	"Ladder",
	"Fire extinguisher",
	"First aid kit",
	"Traffic cones",
}

// NormalizeTools trims names and drops blanks and repeats, keeping first-seen
// order. An empty result falls back to DefaultTools.
func NormalizeTools(tools []string) []string {
	out := make([]string, 0, len(tools))
	seen := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		out = append(out, DefaultTools...)
	}
	return out
}

// Tools returns the reference tool list.
func (e *Engine) Tools() []string {
	out := make([]string, len(e.tools))
	copy(out, e.tools)
	return out
}

// SubmitChecklist validates an equipment check against the reference tool list
// and returns the record with items in reference order. No store is mutated.
func (e *Engine) SubmitChecklist(vehicleID, completedBy string, items []models.ChecklistItem) (models.EquipmentChecklist, error) {
	if _, ok := e.fleet.Get(vehicleID); !ok {
		return models.EquipmentChecklist{}, fmt.Errorf("vehicle %s: %w", vehicleID, ErrNotFound)
	}
	completedBy = strings.TrimSpace(completedBy)
	if completedBy == "" {
		return models.EquipmentChecklist{}, fmt.Errorf("checklist for %s has no inspector: %w", vehicleID, ErrInvalidRequest)
	}

	reference := make(map[string]struct{}, len(e.tools))
	for _, t := range e.tools {
		reference[t] = struct{}{}
	}

	byName := make(map[string]models.ChecklistItem, len(items))
	var duplicates, unknown []string
	for _, item := range items {
		name := strings.TrimSpace(item.ToolName)
		if !item.Condition.Valid() {
			return models.EquipmentChecklist{}, fmt.Errorf("tool %q condition %q: %w", name, item.Condition, ErrInvalidRequest)
		}
		if _, known := reference[name]; !known {
			unknown = append(unknown, name)
			continue
		}
		if _, dup := byName[name]; dup {
			duplicates = append(duplicates, name)
			continue
		}
		item.ToolName = name
		byName[name] = item
	}

	var missing []string
	ordered := make([]models.ChecklistItem, 0, len(e.tools))
	for _, t := range e.tools {
		item, ok := byName[t]
		if !ok {
			missing = append(missing, t)
			continue
		}
		ordered = append(ordered, item)
	}

	if len(missing)+len(duplicates)+len(unknown) > 0 {
		return models.EquipmentChecklist{}, &ChecklistError{Missing: missing, Duplicates: duplicates, Unknown: unknown}
	}

	return models.EquipmentChecklist{
		ID:          e.newID(),
		VehicleID:   vehicleID,
		Timestamp:   e.now().UTC(),
		CompletedBy: completedBy,
		Items:       ordered,
	}, nil
}

// ChecklistError details why a checklist does not match the reference list.
type ChecklistError struct {
	Missing    []string
	Duplicates []string
	Unknown    []string
}

func (e *ChecklistError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Duplicates) > 0 {
		d := append([]string(nil), e.Duplicates...)
		sort.Strings(d)
		parts = append(parts, "duplicated "+strings.Join(d, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(e.Unknown, ", "))
	}
	return fmt.Sprintf("%s: %s", ErrIncompleteChecklist, strings.Join(parts, "; "))
}

// Is lets errors.Is match ErrIncompleteChecklist.
func (e *ChecklistError) Is(target error) bool {
	return target == ErrIncompleteChecklist
}
