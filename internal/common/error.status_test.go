// Package common - Test error taxonomy: WithDetails giữ errors.Is với sentinel gốc,
// status code đúng với hợp đồng HTTP của engine.
package common

import (
	"errors"
	"testing"
)

func TestWithDetails_PreservesSentinelIdentity(t *testing.T) {
	err := WithDetails(ErrSlotAlreadyFilled, map[string]interface{}{"slotKey": "s1"})

	if !errors.Is(err, ErrSlotAlreadyFilled) {
		t.Error("WithDetails phải giữ được errors.Is với sentinel gốc")
	}
	if errors.Is(err, ErrSlotClosed) {
		t.Error("errors.Is không được match nhầm sang sentinel khác")
	}

	var customErr *Error
	if !errors.As(err, &customErr) {
		t.Fatal("WithDetails phải trả về *Error")
	}
	details, ok := customErr.Details.(map[string]interface{})
	if !ok || details["slotKey"] != "s1" {
		t.Errorf("details phải được gắn vào bản sao, nhận được %v", customErr.Details)
	}

	// Sentinel gốc không được sửa
	var original *Error
	errors.As(ErrSlotAlreadyFilled, &original)
	if original.Details != nil {
		t.Error("WithDetails không được sửa details của sentinel gốc")
	}
}

func TestWithDetails_NonCustomErrorPassthrough(t *testing.T) {
	plain := errors.New("lỗi thường")
	if got := WithDetails(plain, "x"); got != plain {
		t.Error("WithDetails với lỗi không phải *Error phải trả về nguyên bản")
	}
}

func TestBusinessErrors_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ErrDuplicateInterest", ErrDuplicateInterest, StatusConflict},
		{"ErrSlotAlreadyFilled", ErrSlotAlreadyFilled, StatusConflict},
		{"ErrNoEligibleNextLevel", ErrNoEligibleNextLevel, StatusConflict},
		{"ErrSlotClosed", ErrSlotClosed, StatusGone},
		{"ErrCandidateNotEligible", ErrCandidateNotEligible, StatusPreconditionFailed},
		{"ErrShiftNotPublic", ErrShiftNotPublic, StatusPreconditionFailed},
		{"ErrNotAuthorized", ErrNotAuthorized, StatusForbidden},
		{"ErrNotFound", ErrNotFound, StatusNotFound},
	}
	for _, tc := range cases {
		var customErr *Error
		if !errors.As(tc.err, &customErr) {
			t.Errorf("%s phải là *Error", tc.name)
			continue
		}
		if customErr.StatusCode != tc.want {
			t.Errorf("%s phải có status %d, nhận được %d", tc.name, tc.want, customErr.StatusCode)
		}
	}
}

func TestIsDuplicateKey_SentinelAndNil(t *testing.T) {
	if IsDuplicateKey(nil) {
		t.Error("IsDuplicateKey(nil) phải trả về false")
	}
	if !IsDuplicateKey(ErrDuplicate) {
		t.Error("IsDuplicateKey phải nhận diện sentinel ErrDuplicate")
	}
	if IsDuplicateKey(errors.New("lỗi khác")) {
		t.Error("IsDuplicateKey không được match lỗi thường")
	}
}
