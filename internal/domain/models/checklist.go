package models

import "time"

// Condition enumerates the states a checked tool can be in.
type Condition string

const (
	ConditionOK      Condition = "OK"
	ConditionDamaged Condition = "DAMAGED"
	ConditionMissing Condition = "MISSING"
)

// Valid reports whether c is one of the known conditions.
func (c Condition) Valid() bool {
	switch c {
	case ConditionOK, ConditionDamaged, ConditionMissing:
		return true
	default:
		return false
	}
}

// ChecklistItem is the inspection result for one reference tool.
type ChecklistItem struct {
	ToolName  string    `bson:"tool_name" json:"toolName" validate:"required"`
	Present   bool      `bson:"present" json:"present"`
	Condition Condition `bson:"condition" json:"condition" validate:"required,oneof=OK DAMAGED MISSING"`
}

// EquipmentChecklist is an immutable record of a completed vehicle equipment check.
type EquipmentChecklist struct {
	ID          string          `bson:"_id" json:"id"`
	VehicleID   string          `bson:"vehicle_id" json:"vehicleId"`
	Timestamp   time.Time       `bson:"timestamp" json:"timestamp"`
	CompletedBy string          `bson:"completed_by" json:"completedBy"`
	Items       []ChecklistItem `bson:"items" json:"items"`
}
