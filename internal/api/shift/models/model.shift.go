package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WholeShiftSlotKey là sentinel cho các dòng interest/assignment nhắm vào cả ca
// (slotId = null trong request). Unique index Mongo không phân biệt được hai giá trị
// null, nên null được chuẩn hóa thành sentinel này trước khi ghi.
const WholeShiftSlotKey = "whole"

// SlotKeyOf chuẩn hóa slotId-or-null thành slot key dùng trong index.
func SlotKeyOf(slotID string) string {
	if slotID == "" {
		return WholeShiftSlotKey
	}
	return slotID
}

// Slot là một khung ngày/giờ cụ thể trong ca. Mỗi slot là một đơn vị
// theo dõi phản hồi độc lập: ca N slot có N sổ trạng thái riêng.
type Slot struct {
	SlotID    string `json:"slotId" bson:"slotId"`
	Date      string `json:"date" bson:"date" validate:"required"` // YYYY-MM-DD
	StartTime int64  `json:"startTime" bson:"startTime" validate:"required"`
	EndTime   int64  `json:"endTime" bson:"endTime" validate:"required"`
	Note      string `json:"note,omitempty" bson:"note,omitempty"`
}

// Shift là aggregate root của engine (shifts).
// Visibility chỉ được EscalationService thay đổi, rank không bao giờ giảm.
type Shift struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId"`
	PostedBy            primitive.ObjectID `json:"postedBy" bson:"postedBy"`

	Title string `json:"title" bson:"title"`
	Slots []Slot `json:"slots" bson:"slots"`

	// StartTime/EndTime của cả ca, suy ra từ slot sớm nhất/muộn nhất. Phục vụ index và listing.
	StartTime int64 `json:"startTime" bson:"startTime"`
	EndTime   int64 `json:"endTime" bson:"endTime"`

	// CurrentLevel là tier hiển thị hiện tại (key trong catalog EscalationLevels).
	CurrentLevel string `json:"currentLevel" bson:"currentLevel" default:"FULL_PART_TIME"`

	// AllowedLevels là tập tier poster được phép đạt tới, do directory suy ra
	// tại thời điểm tạo ca. Engine không tự tính lại.
	AllowedLevels []string `json:"allowedLevels" bson:"allowedLevels"`

	// SingleUserOnly: ca chỉ nhận một người cho toàn bộ slot.
	// Khi true, một assignment whole-shift chặn mọi assignment per-slot.
	SingleUserOnly bool `json:"singleUserOnly" bson:"singleUserOnly"`

	Status string `json:"status" bson:"status" default:"open"`

	// ShareToken là token công khai ổn định, chỉ tồn tại sau khi poster phát hành
	// share link ở tier PLATFORM. Phát hành lại trả về đúng token cũ.
	ShareToken string `json:"shareToken,omitempty" bson:"shareToken,omitempty"`

	HourlyRate float64 `json:"hourlyRate,omitempty" bson:"hourlyRate,omitempty"`
	Note       string  `json:"note,omitempty" bson:"note,omitempty"`

	EscalatedAt int64 `json:"escalatedAt,omitempty" bson:"escalatedAt,omitempty"`
	CreatedAt   int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64 `json:"updatedAt" bson:"updatedAt"`
}

// SlotByID tìm slot theo id trong ca. Trả về false nếu không có.
func (s *Shift) SlotByID(slotID string) (Slot, bool) {
	for _, slot := range s.Slots {
		if slot.SlotID == slotID {
			return slot, true
		}
	}
	return Slot{}, false
}

// PublicView là hình chiếu công khai của ca cho người xem qua share link.
// Không chứa tổ chức, poster, ledger hay bất kỳ định danh cá nhân nào.
type PublicView struct {
	ShiftID    primitive.ObjectID `json:"shiftId"`
	Title      string             `json:"title"`
	Slots      []Slot             `json:"slots"`
	StartTime  int64              `json:"startTime"`
	EndTime    int64              `json:"endTime"`
	HourlyRate float64            `json:"hourlyRate,omitempty"`
	Note       string             `json:"note,omitempty"`
	Status     string             `json:"status"`
}
