package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShiftMemberStatus là một dòng phản hồi của ứng viên trên một slot (shift_member_statuses).
// Unique theo (shiftId, slotKey, userId, sourceLevel): escalate giữ nguyên các dòng
// tier thấp, nên cùng một ứng viên có thể có dòng ở nhiều tier. Aggregator dedupe sau.
type ShiftMemberStatus struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ShiftID primitive.ObjectID `json:"shiftId" bson:"shiftId"`
	SlotKey string             `json:"slotKey" bson:"slotKey"`
	UserID  primitive.ObjectID `json:"userId" bson:"userId"`

	// SourceLevel là tier tại đó dòng này được ghi nhận.
	SourceLevel string `json:"sourceLevel" bson:"sourceLevel"`
	// SourceOrgID là tổ chức qua đó ứng viên thấy ca (chính tổ chức đăng, hoặc org cùng chuỗi).
	SourceOrgID primitive.ObjectID `json:"sourceOrgId,omitempty" bson:"sourceOrgId,omitempty"`

	Status string `json:"status" bson:"status" default:"no_response"`

	// Rating tại thời điểm ghi nhận, dùng cho tie-break của aggregator. Nil = chưa có.
	Rating *float64 `json:"rating,omitempty" bson:"rating,omitempty"`

	// Closed: dòng đã bị đóng không xử lý vì slot có assignment terminal.
	// Không xóa (audit), chỉ loại khỏi output aggregation.
	Closed bool `json:"closed" bson:"closed"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
