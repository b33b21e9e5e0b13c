package shiftsvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/common"
	"pharmastaff/internal/utility"
)

// EscalationService là mutator DUY NHẤT của CurrentLevel.
// Visibility chỉ tiến, không bao giờ lùi; mỗi lần escalate thành công
// nhảy tới tier được phép kế tiếp trong catalog.
type EscalationService struct {
	shiftService *ShiftService
}

// NewEscalationService tạo mới EscalationService.
func NewEscalationService(shiftService *ShiftService) *EscalationService {
	return &EscalationService{shiftService: shiftService}
}

// NextEligibleLevel tìm tier được phép có rank thấp nhất lớn hơn rank hiện tại.
// Hàm thuần túy, không đụng storage. Trả về false khi ca đã ở tier cao nhất được phép.
//
// Lưu ý: "kế tiếp" tính trong tập allowed, không phải rank+1 tuyệt đối.
// Ca với allowed = [FULL_PART_TIME, LOCUM_CASUAL, PLATFORM] escalate từ
// LOCUM_CASUAL sẽ nhảy thẳng tới PLATFORM vì OWNER_CHAIN/ORG_CHAIN không được phép.
func NextEligibleLevel(currentKey string, allowed []string) (models.EscalationLevel, bool) {
	currentRank := models.LevelRank(currentKey)
	for _, l := range models.EscalationLevels {
		if l.Rank > currentRank && utility.Contains(allowed, l.Key) {
			return l, true
		}
	}
	return models.EscalationLevel{}, false
}

// Escalate đẩy ca lên tier được phép kế tiếp.
// Escalate không xóa hay sửa dòng MemberStatus/Interest nào đã có:
// lịch sử tier thấp vẫn hiện diện cho aggregation.
func (s *EscalationService) Escalate(ctx context.Context, shiftID, actorID primitive.ObjectID) (models.Shift, error) {
	var zero models.Shift

	unlock := LockShift(shiftID)
	defer unlock()

	shift, err := s.shiftService.FindOneById(ctx, shiftID)
	if err != nil {
		return zero, err
	}

	// Ca đã filled (assignment whole-shift terminal) hoặc đã đóng thì không escalate nữa
	if shift.Status != models.ShiftStatusOpen {
		return zero, common.WithDetails(common.ErrSlotClosed, map[string]interface{}{
			"shiftId": shiftID.Hex(),
			"status":  shift.Status,
			"action":  "escalate",
		})
	}

	next, ok := NextEligibleLevel(shift.CurrentLevel, shift.AllowedLevels)
	if !ok {
		// Non-fatal với caller: "không còn tier để mở rộng", không phải lỗi hệ thống
		return zero, common.WithDetails(common.ErrNoEligibleNextLevel, map[string]interface{}{
			"shiftId":      shiftID.Hex(),
			"currentLevel": shift.CurrentLevel,
			"action":       "escalate",
		})
	}

	updated, err := s.shiftService.UpdateById(ctx, shiftID, bson.M{
		"currentLevel": next.Key,
		"escalatedAt":  time.Now().UnixMilli(),
	})
	if err != nil {
		return zero, err
	}

	// Tier nội bộ mới: gieo dòng no_response cho các thành viên vừa được thấy ca
	s.shiftService.seedMemberStatuses(ctx, updated, next.Key)

	s.shiftService.audit.Record(ctx, shiftID, actorID, models.AuditActionEscalate, map[string]interface{}{
		"fromLevel": shift.CurrentLevel,
		"toLevel":   next.Key,
	})
	return updated, nil
}
