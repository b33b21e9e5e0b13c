// Package shiftsvc - Test precondition của assign: độc quyền per-slot/whole-shift,
// single-user-only và loại ứng viên rejected.
package shiftsvc

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/common"
)

func TestCheckAssignPreconditions_ClosedShift(t *testing.T) {
	shift := shiftWithSlots("s1")
	shift.Status = models.ShiftStatusClosed

	err := CheckAssignPreconditions(shift, "s1", nil, nil, primitive.NewObjectID())
	if !errors.Is(err, common.ErrSlotClosed) {
		t.Errorf("assign vào ca đã đóng phải trả về ErrSlotClosed, nhận được %v", err)
	}
}

func TestCheckAssignPreconditions_SlotAlreadyFilled(t *testing.T) {
	shift := shiftWithSlots("s1", "s2")
	existing := []models.ShiftAssignment{{ShiftID: shift.ID, SlotKey: "s1"}}

	err := CheckAssignPreconditions(shift, "s1", existing, nil, primitive.NewObjectID())
	if !errors.Is(err, common.ErrSlotAlreadyFilled) {
		t.Errorf("slot đã có người phải trả về ErrSlotAlreadyFilled, nhận được %v", err)
	}
}

func TestCheckAssignPreconditions_OtherSlotStillAssignable(t *testing.T) {
	shift := shiftWithSlots("s1", "s2")
	existing := []models.ShiftAssignment{{ShiftID: shift.ID, SlotKey: "s1"}}

	if err := CheckAssignPreconditions(shift, "s2", existing, nil, primitive.NewObjectID()); err != nil {
		t.Errorf("slot khác chưa có người phải assign được, nhận được %v", err)
	}
}

func TestCheckAssignPreconditions_WholeShiftBlocksEverySlot(t *testing.T) {
	shift := shiftWithSlots("s1", "s2")
	existing := []models.ShiftAssignment{{ShiftID: shift.ID, SlotKey: models.WholeShiftSlotKey}}

	err := CheckAssignPreconditions(shift, "s2", existing, nil, primitive.NewObjectID())
	if !errors.Is(err, common.ErrSlotAlreadyFilled) {
		t.Errorf("assignment whole-shift phải che mọi slot con, nhận được %v", err)
	}
}

func TestCheckAssignPreconditions_PerSlotBlocksWholeShift(t *testing.T) {
	shift := shiftWithSlots("s1", "s2")
	existing := []models.ShiftAssignment{{ShiftID: shift.ID, SlotKey: "s2"}}

	err := CheckAssignPreconditions(shift, models.WholeShiftSlotKey, existing, nil, primitive.NewObjectID())
	if !errors.Is(err, common.ErrSlotAlreadyFilled) {
		t.Errorf("đã có assignment per-slot thì không gán được cả ca, nhận được %v", err)
	}
}

func TestCheckAssignPreconditions_SingleUserOnly(t *testing.T) {
	shift := shiftWithSlots("s1", "s2")
	shift.SingleUserOnly = true
	existing := []models.ShiftAssignment{{ShiftID: shift.ID, SlotKey: "s1"}}

	err := CheckAssignPreconditions(shift, "s2", existing, nil, primitive.NewObjectID())
	if !errors.Is(err, common.ErrSlotAlreadyFilled) {
		t.Errorf("ca single-user-only đã có assignment thì mọi assign khác phải bị chặn, nhận được %v", err)
	}
}

func TestCheckAssignPreconditions_RejectedCandidate(t *testing.T) {
	shift := shiftWithSlots("s1")
	userID := primitive.NewObjectID()
	views := ConsolidateStatuses([]models.ShiftMemberStatus{
		statusRow(userID, "s1", models.LevelFullPartTime, models.MemberStatusRejected, nil),
	})

	err := CheckAssignPreconditions(shift, "s1", nil, views, userID)
	if !errors.Is(err, common.ErrCandidateNotEligible) {
		t.Errorf("ứng viên rejected phải trả về ErrCandidateNotEligible, nhận được %v", err)
	}
}

func TestCheckAssignPreconditions_RejectedThenInterestedIsEligible(t *testing.T) {
	// Ứng viên reject ở tier thấp rồi interested ở tier cao hơn:
	// trạng thái hợp nhất là interested, vẫn đủ điều kiện assign.
	shift := shiftWithSlots("s1")
	userID := primitive.NewObjectID()
	views := ConsolidateStatuses([]models.ShiftMemberStatus{
		statusRow(userID, "s1", models.LevelFullPartTime, models.MemberStatusRejected, nil),
		statusRow(userID, "s1", models.LevelOwnerChain, models.MemberStatusInterested, nil),
	})

	if err := CheckAssignPreconditions(shift, "s1", nil, views, userID); err != nil {
		t.Errorf("trạng thái hợp nhất interested phải assign được, nhận được %v", err)
	}
}

func TestCheckAssignPreconditions_UnknownCandidateIsEligible(t *testing.T) {
	// Ứng viên không có dòng trạng thái nào (ví dụ đến từ share link PLATFORM)
	// vẫn assign được: chỉ rejected mới bị chặn.
	shift := shiftWithSlots("s1")

	if err := CheckAssignPreconditions(shift, "s1", nil, map[primitive.ObjectID]models.CandidateView{}, primitive.NewObjectID()); err != nil {
		t.Errorf("ứng viên không có dòng trạng thái phải assign được, nhận được %v", err)
	}
}
