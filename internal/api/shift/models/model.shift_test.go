// Package models - Test catalog tier, priority trạng thái và chuẩn hóa slot key.
package models

import "testing"

func TestEscalationLevels_RanksStrictlyIncreasing(t *testing.T) {
	if len(EscalationLevels) != 5 {
		t.Fatalf("catalog phải có đúng 5 tier, có %d", len(EscalationLevels))
	}
	for i := 1; i < len(EscalationLevels); i++ {
		if EscalationLevels[i].Rank <= EscalationLevels[i-1].Rank {
			t.Errorf("rank phải tăng nghiêm ngặt: %s (rank %d) sau %s (rank %d)",
				EscalationLevels[i].Key, EscalationLevels[i].Rank,
				EscalationLevels[i-1].Key, EscalationLevels[i-1].Rank)
		}
	}
	if EscalationLevels[0].Key != LevelFullPartTime {
		t.Errorf("tier thấp nhất phải là %s, nhận được %s", LevelFullPartTime, EscalationLevels[0].Key)
	}
	if EscalationLevels[len(EscalationLevels)-1].Key != LevelPlatform {
		t.Errorf("tier cao nhất phải là %s", LevelPlatform)
	}
}

func TestLevelRank_UnknownKeyReturnsMinusOne(t *testing.T) {
	if rank := LevelRank("NOT_A_LEVEL"); rank != -1 {
		t.Errorf("key không tồn tại phải có rank -1, nhận được %d", rank)
	}
	if rank := LevelRank(LevelOrgChain); rank != 3 {
		t.Errorf("rank của %s phải là 3, nhận được %d", LevelOrgChain, rank)
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, l := range EscalationLevels {
		if !IsValidLevel(l.Key) {
			t.Errorf("tier %s trong catalog phải hợp lệ", l.Key)
		}
	}
	if IsValidLevel("platform") {
		t.Error("key tier phân biệt hoa thường, 'platform' không hợp lệ")
	}
}

func TestStatusPriority_Ordering(t *testing.T) {
	// rejected < no_response < interested < accepted
	order := []string{MemberStatusRejected, MemberStatusNoResponse, MemberStatusInterested, MemberStatusAccepted}
	for i := 1; i < len(order); i++ {
		if StatusPriority[order[i]] <= StatusPriority[order[i-1]] {
			t.Errorf("priority của %s (%d) phải lớn hơn %s (%d)",
				order[i], StatusPriority[order[i]], order[i-1], StatusPriority[order[i-1]])
		}
	}
}

func TestSlotKeyOf(t *testing.T) {
	if got := SlotKeyOf(""); got != WholeShiftSlotKey {
		t.Errorf("slotId rỗng phải chuẩn hóa thành %q, nhận được %q", WholeShiftSlotKey, got)
	}
	if got := SlotKeyOf("abc123"); got != "abc123" {
		t.Errorf("slotId khác rỗng phải giữ nguyên, nhận được %q", got)
	}
}

func TestShift_SlotByID(t *testing.T) {
	shift := Shift{Slots: []Slot{
		{SlotID: "a", Date: "2026-09-01"},
		{SlotID: "b", Date: "2026-09-02"},
	}}

	slot, ok := shift.SlotByID("b")
	if !ok || slot.Date != "2026-09-02" {
		t.Errorf("SlotByID phải tìm được slot b, nhận được %+v (ok=%v)", slot, ok)
	}
	if _, ok := shift.SlotByID("c"); ok {
		t.Error("SlotByID phải trả về false với slot không tồn tại")
	}
}

func TestShiftAssignment_IsWholeShift(t *testing.T) {
	whole := ShiftAssignment{SlotKey: WholeShiftSlotKey}
	perSlot := ShiftAssignment{SlotKey: "s1"}

	if !whole.IsWholeShift() {
		t.Error("assignment với slot key sentinel phải là whole-shift")
	}
	if perSlot.IsWholeShift() {
		t.Error("assignment per-slot không được coi là whole-shift")
	}
}
