package shiftsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/common"
)

// AssignmentService gán đúng một ứng viên vào một slot (hoặc cả ca),
// độc quyền và terminal. Unique index (shiftId, slotKey) là lớp bảo vệ cuối:
// hai lệnh assign lọt qua precondition cùng lúc thì index cho đúng một lệnh thắng.
type AssignmentService struct {
	shifts      shiftStore
	statuses    statusStore
	interests   interestStore
	assignments assignmentStore
	audit       auditRecorder
}

// NewAssignmentService tạo mới AssignmentService trên các store của shiftService.
func NewAssignmentService(shiftService *ShiftService) *AssignmentService {
	return &AssignmentService{
		shifts:      shiftService,
		statuses:    shiftService.statusService,
		interests:   shiftService.interestService,
		assignments: shiftService.assignmentService,
		audit:       shiftService.audit,
	}
}

// CheckAssignPreconditions kiểm tra precondition của assign. Hàm thuần túy:
//   - slot (hoặc cả ca) chưa có assignment, và không bị assignment whole-shift che
//   - ca single-user-only thì chưa có assignment nào trên toàn ca
//   - trạng thái hợp nhất của ứng viên không phải rejected
func CheckAssignPreconditions(shift models.Shift, slotKey string, existing []models.ShiftAssignment, views map[primitive.ObjectID]models.CandidateView, userID primitive.ObjectID) error {
	if shift.Status == models.ShiftStatusClosed {
		return common.WithDetails(common.ErrSlotClosed, map[string]interface{}{
			"shiftId": shift.ID.Hex(),
			"action":  "assign",
		})
	}

	for _, a := range existing {
		conflict := a.SlotKey == slotKey || // slot đã có người
			a.IsWholeShift() || // whole-shift che mọi slot
			slotKey == models.WholeShiftSlotKey || // gán cả ca khi đã có per-slot
			shift.SingleUserOnly // ca một người, đã có assignment bất kỳ
		if conflict {
			return common.WithDetails(common.ErrSlotAlreadyFilled, map[string]interface{}{
				"shiftId":         shift.ID.Hex(),
				"slotKey":         slotKey,
				"existingSlotKey": a.SlotKey,
				"action":          "assign",
			})
		}
	}

	if view, ok := views[userID]; ok && view.Status == models.MemberStatusRejected {
		return common.WithDetails(common.ErrCandidateNotEligible, map[string]interface{}{
			"shiftId": shift.ID.Hex(),
			"userId":  userID.Hex(),
			"status":  view.Status,
			"action":  "assign",
		})
	}
	return nil
}

// Assign gán ứng viên userID vào slot (slotID rỗng = cả ca).
// Thành công thì đóng-không-xử-lý mọi dòng interest/status còn chờ của slot đó
// (hoặc cả ca): loại khỏi aggregation nhưng không xóa, giữ cho audit.
// Gán whole-shift cũng đóng các interest per-slot của ca (slot con không còn mở).
func (s *AssignmentService) Assign(ctx context.Context, shiftID primitive.ObjectID, slotID string, userID, actorID primitive.ObjectID) (models.ShiftAssignment, error) {
	var zero models.ShiftAssignment

	unlock := LockShift(shiftID)
	defer unlock()

	shift, err := s.shifts.FindOneById(ctx, shiftID)
	if err != nil {
		return zero, err
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

	existing, err := s.assignments.Find(ctx, bson.M{"shiftId": shiftID}, nil)
	if err != nil {
		return zero, err
	}

	rows, err := s.statuses.Find(ctx, bson.M{"shiftId": shiftID}, nil)
	if err != nil {
		return zero, err
	}
	views := ConsolidateStatuses(rows)

	if err := CheckAssignPreconditions(shift, slotKey, existing, views, userID); err != nil {
		return zero, err
	}

	created, err := s.assignments.InsertOne(ctx, models.ShiftAssignment{
		ShiftID:     shiftID,
		SlotKey:     slotKey,
		AssigneeID:  userID,
		AssignedBy:  actorID,
		SourceLevel: shift.CurrentLevel,
	})
	if err != nil {
		if common.IsDuplicateKey(err) {
			return zero, common.WithDetails(common.ErrSlotAlreadyFilled, map[string]interface{}{
				"shiftId": shiftID.Hex(),
				"slotKey": slotKey,
				"action":  "assign",
			})
		}
		return zero, err
	}

	s.closeCompetingRows(ctx, shiftID, slotKey)

	if slotKey == models.WholeShiftSlotKey || s.allSlotsAssigned(shift, append(existing, created)) {
		if _, err := s.shifts.UpdateById(ctx, shiftID, bson.M{"status": models.ShiftStatusFilled}); err != nil {
			return zero, err
		}
	}

	s.audit.Record(ctx, shiftID, actorID, models.AuditActionAssign, map[string]interface{}{
		"slotKey": slotKey,
		"userId":  userID.Hex(),
		"level":   shift.CurrentLevel,
	})
	return created, nil
}

// closeCompetingRows đóng các dòng interest/status còn chờ của slot vừa gán.
// Với whole-shift đóng toàn bộ dòng của ca. Lỗi chỉ log qua UpdateMany của base
// (không rollback assignment: các dòng sót sẽ bị Closed che bởi check assignment).
func (s *AssignmentService) closeCompetingRows(ctx context.Context, shiftID primitive.ObjectID, slotKey string) {
	interestFilter := bson.M{"shiftId": shiftID, "status": models.InterestStatusOpen}
	statusFilter := bson.M{"shiftId": shiftID, "closed": false}
	if slotKey != models.WholeShiftSlotKey {
		interestFilter["slotKey"] = slotKey
		statusFilter["slotKey"] = slotKey
	}

	_, _ = s.interests.UpdateMany(ctx, interestFilter,
		bson.M{"status": models.InterestStatusClosed}, nil)
	_, _ = s.statuses.UpdateMany(ctx, statusFilter,
		bson.M{"closed": true}, nil)
}

// allSlotsAssigned kiểm tra mọi slot của ca đã có assignment per-slot.
func (s *AssignmentService) allSlotsAssigned(shift models.Shift, assignments []models.ShiftAssignment) bool {
	assigned := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.SlotKey] = true
	}
	for _, slot := range shift.Slots {
		if !assigned[slot.SlotID] {
			return false
		}
	}
	return len(shift.Slots) > 0
}

// ListByShift trả về các assignment của một ca.
func (s *AssignmentService) ListByShift(ctx context.Context, shiftID primitive.ObjectID) ([]models.ShiftAssignment, error) {
	return s.assignments.Find(ctx, bson.M{"shiftId": shiftID}, nil)
}
