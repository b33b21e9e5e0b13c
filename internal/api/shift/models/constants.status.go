package models

// Trạng thái phản hồi của ứng viên trên một slot.
const (
	MemberStatusNoResponse = "no_response"
	MemberStatusInterested = "interested"
	MemberStatusRejected   = "rejected"
	MemberStatusAccepted   = "accepted"
)

// StatusPriority gán độ ưu tiên cho từng trạng thái khi dedupe.
// Ứng viên accepted trên bất kỳ slot nào không bao giờ bị hiển thị là rejected
// vì một dòng slot khác; interested không bị che bởi no_response mặc định.
var StatusPriority = map[string]int{
	MemberStatusRejected:   0,
	MemberStatusNoResponse: 1,
	MemberStatusInterested: 2,
	MemberStatusAccepted:   3,
}

// Trạng thái vòng đời của ca làm việc.
const (
	ShiftStatusOpen   = "open"   // Đang mở, nhận phản hồi
	ShiftStatusFilled = "filled" // Đã gán whole-shift (hoặc đủ mọi slot)
	ShiftStatusClosed = "closed" // Poster đóng/xóa ca, ledger chuyển sang chờ dọn
)

// Trạng thái của một dòng interest trong sổ quan tâm.
const (
	InterestStatusOpen   = "open"   // Đang chờ poster xử lý
	InterestStatusClosed = "closed" // Đóng không xử lý (slot đã có assignment), giữ lại cho audit
)
