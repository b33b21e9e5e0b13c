// Package dto - input DTO cho domain shift.
package dto

// SlotInput là một khung giờ khi tạo ca.
type SlotInput struct {
	Date      string `json:"date" validate:"required"`
	StartTime int64  `json:"startTime" validate:"required"`
	EndTime   int64  `json:"endTime" validate:"required"`
	Note      string `json:"note,omitempty"`
}

// ShiftCreateInput là input tạo ca mới.
// AllowedLevels KHÔNG nhận từ client: directory suy ra theo tổ chức đăng ca.
type ShiftCreateInput struct {
	Title          string      `json:"title" validate:"required"`
	Slots          []SlotInput `json:"slots" validate:"required,min=1,dive"`
	SingleUserOnly bool        `json:"singleUserOnly"`
	HourlyRate     float64     `json:"hourlyRate,omitempty"`
	Note           string      `json:"note,omitempty"`
}

// ShiftUpdateInput là input cập nhật thông tin mô tả của ca.
// Visibility/status không cập nhật qua đường này.
type ShiftUpdateInput struct {
	Title      string  `json:"title,omitempty"`
	HourlyRate float64 `json:"hourlyRate,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// InterestInput là input ghi nhận quan tâm. SlotID rỗng = quan tâm cả ca.
type InterestInput struct {
	SlotID string `json:"slotId,omitempty"`
}

// RevealInput là input reveal một dòng interest blind.
type RevealInput struct {
	InterestID string `json:"interestId" validate:"required"`
}

// AssignInput là input gán ứng viên. SlotID rỗng = gán cả ca.
type AssignInput struct {
	UserID string `json:"userId" validate:"required"`
	SlotID string `json:"slotId,omitempty"`
}

// MemberStatusInput là input ghi nhận phản hồi của thành viên tier nội bộ.
type MemberStatusInput struct {
	SlotID string `json:"slotId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=no_response interested rejected accepted"`
}

// ShiftIDParam là URI param chung cho các route thao tác trên một ca.
type ShiftIDParam struct {
	ShiftID string `uri:"shiftId" validate:"required"`
}

// ShareTokenParam là URI param cho route public.
type ShareTokenParam struct {
	Token string `uri:"token" validate:"required"`
}
