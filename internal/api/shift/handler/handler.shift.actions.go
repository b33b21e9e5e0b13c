package shifthdl

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "pharmastaff/internal/api/base/handler"
	"pharmastaff/internal/api/middleware"
	"pharmastaff/internal/api/shift/dto"
	"pharmastaff/internal/common"
	"pharmastaff/internal/logger"
)

// HandleEscalate xử lý POST /shifts/:shiftId/escalate. Poster-only.
// ErrNoEligibleNextLevel trả về nguyên trạng (409): client hiển thị
// "không còn tier để mở rộng", không phải lỗi hệ thống.
func (h *ShiftHandler) HandleEscalate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftManage); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		shiftID, err := shiftIDFromParams(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		_, userID, err := h.requirePoster(c, shiftID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		updated, err := h.escalation.Escalate(c.Context(), shiftID, userID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		logger.LogShiftAction("shift.escalate", shiftID.Hex(), c, map[string]interface{}{
			"toLevel": updated.CurrentLevel,
		})
		basehdl.WriteResponse(c, updated, nil)
		return nil
	})
}

// HandleCandidates xử lý GET /shifts/:shiftId/candidates. Poster-only.
// Query slotId + level → danh sách thành viên đủ điều kiện của một slot tại một tier;
// không có query → board hợp nhất đầy đủ.
func (h *ShiftHandler) HandleCandidates(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftView); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		shiftID, err := shiftIDFromParams(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		if _, _, err := h.requirePoster(c, shiftID); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		slotID := c.Query("slotId")
		level := c.Query("level")
		if slotID != "" && level != "" {
			rows, err := h.aggregate.MemberStatusAtLevel(c.Context(), shiftID, slotID, level)
			if err != nil {
				basehdl.WriteResponse(c, nil, err)
				return nil
			}
			basehdl.WriteResponse(c, rows, nil)
			return nil
		}

		board, err := h.aggregate.CandidateBoard(c.Context(), shiftID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		basehdl.WriteResponse(c, board, nil)
		return nil
	})
}

// HandleRespondStatus xử lý POST /shifts/:shiftId/status:
// thành viên tier nội bộ ghi nhận phản hồi (interested/rejected...) cho một slot.
func (h *ShiftHandler) HandleRespondStatus(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftRespond); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		shiftID, err := shiftIDFromParams(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		userID, err := userIDFromContext(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		input := new(dto.MemberStatusInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		row, err := h.shiftService.RespondMemberStatus(c.Context(), shiftID, userID, input.SlotID, input.Status)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		basehdl.WriteResponse(c, row, nil)
		return nil
	})
}

// HandleInterest xử lý POST /shifts/:shiftId/interest: ứng viên ghi quan tâm blind.
// Duplicate được trả về như success idempotent với dòng đã có.
func (h *ShiftHandler) HandleInterest(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftRespond); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		shiftID, err := shiftIDFromParams(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		userID, err := userIDFromContext(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		input := new(dto.InterestInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		interest, err := h.interest.ExpressInterest(c.Context(), shiftID, input.SlotID, userID)
		if err != nil && !errors.Is(err, common.ErrDuplicateInterest) {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		logger.LogShiftAction("shift.interest", shiftID.Hex(), c, map[string]interface{}{
			"slotKey":   interest.SlotKey,
			"duplicate": err != nil,
		})
		basehdl.WriteResponse(c, interest, nil)
		return nil
	})
}

// HandleReveal xử lý POST /shifts/:shiftId/reveal. Poster-only.
// Trả về dòng interest đã reveal kèm snapshot hồ sơ của ứng viên.
func (h *ShiftHandler) HandleReveal(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftManage); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		shiftID, err := shiftIDFromParams(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		_, userID, err := h.requirePoster(c, shiftID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		input := new(dto.RevealInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		interestID, err := primitive.ObjectIDFromHex(input.InterestID)
		if err != nil {
			basehdl.WriteResponse(c, nil, common.WithDetails(common.ErrInvalidFormat, map[string]interface{}{
				"field": "interestId",
			}))
			return nil
		}

		interest, snapshot, err := h.interest.Reveal(c.Context(), shiftID, interestID, userID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		logger.LogShiftAction("shift.reveal", shiftID.Hex(), c, map[string]interface{}{
			"interestId": interestID.Hex(),
		})
		basehdl.WriteResponse(c, fiber.Map{
			"interest": interest,
			"profile":  snapshot,
		}, nil)
		return nil
	})
}

// HandleAssign xử lý POST /shifts/:shiftId/assign. Poster-only.
func (h *ShiftHandler) HandleAssign(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftManage); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		shiftID, err := shiftIDFromParams(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		_, actorID, err := h.requirePoster(c, shiftID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		input := new(dto.AssignInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		userID, err := primitive.ObjectIDFromHex(input.UserID)
		if err != nil {
			basehdl.WriteResponse(c, nil, common.WithDetails(common.ErrInvalidFormat, map[string]interface{}{
				"field": "userId",
			}))
			return nil
		}

		assignment, err := h.assignment.Assign(c.Context(), shiftID, input.SlotID, userID, actorID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		logger.LogShiftAction("shift.assign", shiftID.Hex(), c, map[string]interface{}{
			"slotKey": assignment.SlotKey,
			"userId":  userID.Hex(),
		})
		basehdl.WriteResponse(c, assignment, nil)
		return nil
	})
}

// HandleShareLink xử lý POST /shifts/:shiftId/share-link. Poster-only.
func (h *ShiftHandler) HandleShareLink(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftManage); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		shiftID, err := shiftIDFromParams(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		_, userID, err := h.requirePoster(c, shiftID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		token, err := h.shareLink.IssueLink(c.Context(), shiftID, userID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		logger.LogShiftAction("shift.share_link", shiftID.Hex(), c, nil)
		basehdl.WriteResponse(c, fiber.Map{"token": token}, nil)
		return nil
	})
}
