package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action của audit record.
const (
	AuditActionCreate   = "shift.create"
	AuditActionEscalate = "shift.escalate"
	AuditActionInterest = "shift.interest"
	AuditActionReveal   = "shift.reveal"
	AuditActionAssign   = "shift.assign"
	AuditActionShare    = "shift.share_link"
	AuditActionClose    = "shift.close"
)

// ShiftAudit là một dòng lịch sử thao tác trên ca (shift_audit).
// Append-only; worker retention dọn các dòng quá hạn của ca đã đóng.
type ShiftAudit struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ShiftID primitive.ObjectID `json:"shiftId" bson:"shiftId"`
	ActorID primitive.ObjectID `json:"actorId,omitempty" bson:"actorId,omitempty"`
	Action  string             `json:"action" bson:"action"`

	// Details chứa ngữ cảnh của thao tác: fromLevel/toLevel với escalate,
	// slotKey/userId với assign và reveal.
	Details map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
