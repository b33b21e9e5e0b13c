package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CandidateView là trạng thái hợp nhất của một ứng viên sau dedupe.
// Đầu ra của aggregator, tính thuần túy từ các dòng ShiftMemberStatus.
type CandidateView struct {
	UserID primitive.ObjectID `json:"userId"`

	// Status là trạng thái có priority cao nhất trong mọi dòng của ứng viên.
	Status string `json:"status"`

	// Rating của dòng thắng tie-break. Nil nếu dòng đó không có rating.
	Rating *float64 `json:"rating,omitempty"`

	// SlotStatuses liệt kê trạng thái theo từng slot (slotKey → status),
	// phục vụ hiển thị per-slot khi trạng thái không đồng nhất.
	SlotStatuses map[string]string `json:"slotStatuses,omitempty"`
}

// PlatformInterestEntry là một dòng interest ở tier PLATFORM trong view của poster.
// Trước khi reveal chỉ có id dòng interest và slot, KHÔNG có userId hay hồ sơ.
type PlatformInterestEntry struct {
	InterestID primitive.ObjectID `json:"interestId"`
	SlotKey    string             `json:"slotKey"`
	Revealed   bool               `json:"revealed"`
	CreatedAt  int64              `json:"createdAt"`

	// Chỉ set sau khi revealed.
	UserID  *primitive.ObjectID `json:"userId,omitempty"`
	Profile interface{}         `json:"profile,omitempty"`
}

// CandidateBoard là output đầy đủ của thao tác liệt kê ứng viên.
// Members: ứng viên các tier dưới PLATFORM, bucket theo trạng thái hợp nhất.
// PlatformInterests: các dòng blind interest (chỉ xuất hiện khi ca đã ở PLATFORM).
type CandidateBoard struct {
	ShiftID      primitive.ObjectID `json:"shiftId"`
	CurrentLevel string             `json:"currentLevel"`

	// Buckets theo trạng thái hợp nhất: accepted / interested / no_response / rejected.
	Members map[string][]CandidateView `json:"members"`

	// WholeShift: ứng viên có trạng thái đồng nhất trên MỌI slot của ca
	// (interested hoặc rejected trên tất cả N slot). Không đồng nhất thì chỉ per-slot.
	WholeShiftInterested []CandidateView `json:"wholeShiftInterested"`
	WholeShiftRejected   []CandidateView `json:"wholeShiftRejected"`

	PlatformInterests []PlatformInterestEntry `json:"platformInterests,omitempty"`
}
