// Package models - domain shift (ca làm việc).
// File này định nghĩa catalog tier hiển thị cố định của engine escalation.
package models

// EscalationLevel là một tier hiển thị trong catalog cố định.
// Rank tăng nghiêm ngặt và không đổi sau khi process khởi động.
type EscalationLevel struct {
	Key                  string // Tag duy nhất của tier
	Rank                 int    // Thứ tự tăng dần
	RequiresOrganization bool   // Tier chỉ khả dụng khi tổ chức đã claim mạng lưới
}

// Các key tier, theo thứ tự rank tăng dần.
const (
	LevelFullPartTime = "FULL_PART_TIME" // Nhân viên full-time/part-time của chính tổ chức
	LevelLocumCasual  = "LOCUM_CASUAL"   // Locum/casual của chính tổ chức
	LevelOwnerChain   = "OWNER_CHAIN"    // Các nhà thuốc khác cùng chuỗi/chủ
	LevelOrgChain     = "ORG_CHAIN"      // Mạng lưới tổ chức đã claim
	LevelPlatform     = "PLATFORM"       // Công khai trên platform
)

// EscalationLevels là catalog 5 tier chính tắc, rank 0..4.
// Đây là dữ liệu tĩnh: KHÔNG thêm/bớt/sắp xếp lại ở runtime.
var EscalationLevels = []EscalationLevel{
	{Key: LevelFullPartTime, Rank: 0, RequiresOrganization: false},
	{Key: LevelLocumCasual, Rank: 1, RequiresOrganization: false},
	{Key: LevelOwnerChain, Rank: 2, RequiresOrganization: false},
	{Key: LevelOrgChain, Rank: 3, RequiresOrganization: true},
	{Key: LevelPlatform, Rank: 4, RequiresOrganization: false},
}

// LevelByKey tra cứu tier theo key.
func LevelByKey(key string) (EscalationLevel, bool) {
	for _, l := range EscalationLevels {
		if l.Key == key {
			return l, true
		}
	}
	return EscalationLevel{}, false
}

// LevelRank trả về rank của tier, -1 nếu key không tồn tại trong catalog.
func LevelRank(key string) int {
	if l, ok := LevelByKey(key); ok {
		return l.Rank
	}
	return -1
}

// IsValidLevel kiểm tra key có trong catalog không.
func IsValidLevel(key string) bool {
	_, ok := LevelByKey(key)
	return ok
}
