package shifthdl

import (
	"testing"

	"pharmastaff/internal/api/middleware"
	"pharmastaff/internal/common"
)

// Ứng viên chỉ giữ shift.respond phải đi qua được gate của các route ứng viên
// (interest, status) và bị chặn ở các route poster. Gate nằm trong handler vì
// các route này dùng chung prefix /shifts với một bộ middleware xác thực duy nhất.
func TestEnsureCapability_RespondOnlyCaller(t *testing.T) {
	caps := []string{middleware.CapShiftRespond}

	if err := ensureCapability(caps, middleware.CapShiftRespond); err != nil {
		t.Fatalf("Caller có shift.respond phải qua được gate shift.respond, nhận lỗi: %v", err)
	}
	if err := ensureCapability(caps, middleware.CapShiftManage); err == nil {
		t.Fatal("Caller chỉ có shift.respond phải bị chặn ở gate shift.manage")
	}
	if err := ensureCapability(caps, middleware.CapShiftView); err == nil {
		t.Fatal("Caller chỉ có shift.respond phải bị chặn ở gate shift.view")
	}
}

func TestEnsureCapability_DeniedErrorShape(t *testing.T) {
	err := ensureCapability([]string{middleware.CapShiftView}, middleware.CapShiftManage)
	if err == nil {
		t.Fatal("Thiếu capability phải trả về lỗi")
	}

	customErr, ok := err.(*common.Error)
	if !ok {
		t.Fatalf("Lỗi thiếu capability phải là *common.Error, nhận %T", err)
	}
	if customErr.Code.Code != common.ErrCodeAuthCapability.Code {
		t.Errorf("Mã lỗi phải là %s, nhận %s", common.ErrCodeAuthCapability.Code, customErr.Code.Code)
	}
	if customErr.StatusCode != common.StatusForbidden {
		t.Errorf("Status code phải là %d, nhận %d", common.StatusForbidden, customErr.StatusCode)
	}
}

func TestEnsureCapability_EmptyRequirement(t *testing.T) {
	if err := ensureCapability(nil, ""); err != nil {
		t.Fatalf("Required rỗng nghĩa là chỉ cần xác thực, không được trả lỗi: %v", err)
	}
	if err := ensureCapability([]string{}, middleware.CapShiftManage); err == nil {
		t.Fatal("Caller không có capability nào phải bị chặn")
	}
}

func TestEnsureCapability_MultipleCapabilities(t *testing.T) {
	caps := []string{middleware.CapShiftView, middleware.CapShiftManage}
	for _, required := range []string{middleware.CapShiftView, middleware.CapShiftManage} {
		if err := ensureCapability(caps, required); err != nil {
			t.Errorf("Caller giữ %s phải qua được gate tương ứng, nhận lỗi: %v", required, err)
		}
	}
}
