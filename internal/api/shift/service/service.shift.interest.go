package shiftsvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	profilemodels "pharmastaff/internal/api/profile/models"
	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/common"
)

// InterestService quản lý sổ quan tâm blind ở tier PLATFORM và giao thức reveal.
type InterestService struct {
	shifts      shiftStore
	interests   interestStore
	assignments assignmentStore
	profile     profileReader
	audit       auditRecorder
}

// NewInterestService tạo mới InterestService trên các store của shiftService.
func NewInterestService(shiftService *ShiftService) *InterestService {
	return &InterestService{
		shifts:      shiftService,
		interests:   shiftService.interestService,
		assignments: shiftService.assignmentService,
		profile:     shiftService.profile,
		audit:       shiftService.audit,
	}
}

// ExpressInterest ghi nhận quan tâm của userID cho một slot (slotID rỗng = cả ca).
// Một user có thể giữ đồng thời quan tâm cả-ca và quan tâm per-slot, là hai dòng độc lập.
// Duplicate cho đúng (shift, slot-or-null, user) trả về ErrDuplicateInterest kèm dòng cũ;
// handler xử lý như success idempotent.
func (s *InterestService) ExpressInterest(ctx context.Context, shiftID primitive.ObjectID, slotID string, userID primitive.ObjectID) (models.ShiftInterest, error) {
	var zero models.ShiftInterest

	unlock := LockShift(shiftID)
	defer unlock()

	shift, err := s.shifts.FindOneById(ctx, shiftID)
	if err != nil {
		return zero, err
	}
	if shift.CurrentLevel != models.LevelPlatform {
		return zero, common.WithDetails(common.ErrShiftNotPublic, map[string]interface{}{
			"shiftId":      shiftID.Hex(),
			"currentLevel": shift.CurrentLevel,
			"action":       "expressInterest",
		})
	}
	if shift.Status != models.ShiftStatusOpen {
		return zero, common.WithDetails(common.ErrSlotClosed, map[string]interface{}{
			"shiftId": shiftID.Hex(),
			"status":  shift.Status,
			"action":  "expressInterest",
		})
	}

	slotKey := models.WholeShiftSlotKey
	if slotID != "" {
		if _, ok := shift.SlotByID(slotID); !ok {
			return zero, common.WithDetails(common.ErrNotFound, map[string]interface{}{
				"shiftId": shiftID.Hex(),
				"slotId":  slotID,
			})
		}
		slotKey = slotID
	}

	// Slot đã có assignment terminal (trực tiếp hoặc qua whole-shift) thì đóng với interest mới
	assigned, err := s.assignments.DocumentExists(ctx, bson.M{
		"shiftId": shiftID,
		"slotKey": bson.M{"$in": []string{slotKey, models.WholeShiftSlotKey}},
	})
	if err != nil {
		return zero, err
	}
	if assigned {
		return zero, common.WithDetails(common.ErrSlotClosed, map[string]interface{}{
			"shiftId": shiftID.Hex(),
			"slotId":  slotID,
			"action":  "expressInterest",
		})
	}

	created, err := s.interests.InsertOne(ctx, models.ShiftInterest{
		ShiftID: shiftID,
		SlotKey: slotKey,
		UserID:  userID,
		Status:  models.InterestStatusOpen,
	})
	if err != nil {
		if common.IsDuplicateKey(err) {
			existing, findErr := s.interests.FindOne(ctx, bson.M{
				"shiftId": shiftID,
				"slotKey": slotKey,
				"userId":  userID,
			}, nil)
			if findErr != nil {
				return zero, findErr
			}
			return existing, common.WithDetails(common.ErrDuplicateInterest, map[string]interface{}{
				"shiftId": shiftID.Hex(),
				"slotId":  slotID,
			})
		}
		return zero, err
	}

	// Audit không chứa userId: interest là blind cho tới khi poster reveal
	s.audit.Record(ctx, shiftID, primitive.NilObjectID, models.AuditActionInterest, map[string]interface{}{
		"slotKey": slotKey,
	})
	return created, nil
}

// Reveal mở định danh của một dòng interest cho poster.
// Chỉ hợp lệ khi ca ở PLATFORM. Một chiều: revealed không bao giờ quay về false;
// reveal lần hai là no-op idempotent, trả về cùng snapshot, không side effect mới.
func (s *InterestService) Reveal(ctx context.Context, shiftID, interestID, actorID primitive.ObjectID) (models.ShiftInterest, profilemodels.ProfileSnapshot, error) {
	var zeroInterest models.ShiftInterest
	var zeroSnapshot profilemodels.ProfileSnapshot

	unlock := LockShift(shiftID)
	defer unlock()

	shift, err := s.shifts.FindOneById(ctx, shiftID)
	if err != nil {
		return zeroInterest, zeroSnapshot, err
	}
	if shift.CurrentLevel != models.LevelPlatform {
		return zeroInterest, zeroSnapshot, common.WithDetails(common.ErrShiftNotPublic, map[string]interface{}{
			"shiftId":      shiftID.Hex(),
			"currentLevel": shift.CurrentLevel,
			"action":       "reveal",
		})
	}

	interest, err := s.interests.FindOneById(ctx, interestID)
	if err != nil {
		return zeroInterest, zeroSnapshot, err
	}
	if interest.ShiftID != shiftID {
		return zeroInterest, zeroSnapshot, common.WithDetails(common.ErrNotFound, map[string]interface{}{
			"shiftId":    shiftID.Hex(),
			"interestId": interestID.Hex(),
		})
	}

	if interest.Revealed {
		// Idempotent: không ghi gì thêm, không audit lần hai
		return interest, s.profile.Snapshot(ctx, interest.UserID), nil
	}

	updated, err := s.interests.UpdateById(ctx, interestID, bson.M{
		"revealed":   true,
		"revealedAt": time.Now().UnixMilli(),
		"revealedBy": actorID,
	})
	if err != nil {
		return zeroInterest, zeroSnapshot, err
	}

	s.audit.Record(ctx, shiftID, actorID, models.AuditActionReveal, map[string]interface{}{
		"interestId": interestID.Hex(),
		"slotKey":    interest.SlotKey,
		"userId":     interest.UserID.Hex(),
	})
	return updated, s.profile.Snapshot(ctx, interest.UserID), nil
}
