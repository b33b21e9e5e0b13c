package shiftsvc

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/common"
)

// ShareLinkService phát hành token công khai cho ca ở tier PLATFORM.
type ShareLinkService struct {
	shifts shiftStore
	audit  auditRecorder
}

// NewShareLinkService tạo mới ShareLinkService trên các store của shiftService.
func NewShareLinkService(shiftService *ShiftService) *ShareLinkService {
	return &ShareLinkService{
		shifts: shiftService,
		audit:  shiftService.audit,
	}
}

// IssueLink phát hành token opaque cho ca. Token ổn định suốt đời ca:
// phát hành lại trả về đúng token cũ để link đã chia sẻ tiếp tục hoạt động.
// Yêu cầu ca đã ở PLATFORM, ngược lại ErrShiftNotPublic.
func (s *ShareLinkService) IssueLink(ctx context.Context, shiftID, actorID primitive.ObjectID) (string, error) {
	unlock := LockShift(shiftID)
	defer unlock()

	shift, err := s.shifts.FindOneById(ctx, shiftID)
	if err != nil {
		return "", err
	}
	if shift.CurrentLevel != models.LevelPlatform {
		return "", common.WithDetails(common.ErrShiftNotPublic, map[string]interface{}{
			"shiftId":      shiftID.Hex(),
			"currentLevel": shift.CurrentLevel,
			"action":       "shareLink",
		})
	}

	// Token đã có: trả về nguyên vẹn, kể cả khi ca vừa filled (link cũ vẫn resolve
	// được tới khi ca đóng)
	if shift.ShareToken != "" {
		return shift.ShareToken, nil
	}

	if shift.Status != models.ShiftStatusOpen {
		return "", common.WithDetails(common.ErrSlotClosed, map[string]interface{}{
			"shiftId": shiftID.Hex(),
			"status":  shift.Status,
			"action":  "shareLink",
		})
	}

	token := uuid.NewString()
	if _, err := s.shifts.UpdateById(ctx, shiftID, bson.M{"shareToken": token}); err != nil {
		return "", err
	}

	s.audit.Record(ctx, shiftID, actorID, models.AuditActionShare, nil)
	return token, nil
}

// ResolveToken tra ca theo share token và trả về hình chiếu công khai.
// Ca đã đóng trả về ErrSlotClosed (410) để phân biệt với token không tồn tại (404).
func (s *ShareLinkService) ResolveToken(ctx context.Context, token string) (models.PublicView, error) {
	var zero models.PublicView

	shift, err := s.shifts.FindOne(ctx, bson.M{"shareToken": token}, nil)
	if err != nil {
		return zero, err
	}
	if shift.Status == models.ShiftStatusClosed {
		return zero, common.WithDetails(common.ErrSlotClosed, map[string]interface{}{
			"action": "publicView",
		})
	}

	return models.PublicView{
		ShiftID:    shift.ID,
		Title:      shift.Title,
		Slots:      shift.Slots,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		HourlyRate: shift.HourlyRate,
		Note:       shift.Note,
		Status:     shift.Status,
	}, nil
}
