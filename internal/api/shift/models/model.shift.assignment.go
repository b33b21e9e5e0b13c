package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShiftAssignment gán một ứng viên vào một slot hoặc cả ca (shift_assignments).
// Unique theo (shiftId, slotKey): tầng DB bảo đảm mỗi slot tối đa một assignment,
// hai lệnh assign đồng thời thì đúng một lệnh thắng.
// Assignment là terminal: slot đã gán không nhận thêm escalate/interest/status nào.
type ShiftAssignment struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ShiftID primitive.ObjectID `json:"shiftId" bson:"shiftId"`
	SlotKey string             `json:"slotKey" bson:"slotKey"`

	AssigneeID primitive.ObjectID `json:"assigneeId" bson:"assigneeId"`
	AssignedBy primitive.ObjectID `json:"assignedBy" bson:"assignedBy"`

	// SourceLevel là tier hiển thị của ca tại thời điểm gán.
	SourceLevel string `json:"sourceLevel" bson:"sourceLevel"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// IsWholeShift cho biết assignment này chiếm cả ca.
func (a *ShiftAssignment) IsWholeShift() bool {
	return a.SlotKey == WholeShiftSlotKey
}
