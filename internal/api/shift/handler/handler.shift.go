// Package shifthdl - handler HTTP cho domain shift.
package shifthdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "pharmastaff/internal/api/base/handler"
	"pharmastaff/internal/api/middleware"
	"pharmastaff/internal/api/shift/dto"
	"pharmastaff/internal/api/shift/models"
	shiftsvc "pharmastaff/internal/api/shift/service"
	"pharmastaff/internal/common"
	"pharmastaff/internal/logger"
	"pharmastaff/internal/utility"
)

// ShiftHandler xử lý các route của domain shift.
type ShiftHandler struct {
	*basehdl.BaseHandler[models.Shift, dto.ShiftCreateInput, dto.ShiftUpdateInput]

	shiftService *shiftsvc.ShiftService
	escalation   *shiftsvc.EscalationService
	aggregate    *shiftsvc.StatusAggregateService
	interest     *shiftsvc.InterestService
	assignment   *shiftsvc.AssignmentService
	shareLink    *shiftsvc.ShareLinkService
}

// NewShiftHandler tạo mới ShiftHandler cùng toàn bộ service của engine.
func NewShiftHandler() (*ShiftHandler, error) {
	shiftService, err := shiftsvc.NewShiftService()
	if err != nil {
		return nil, err
	}
	return &ShiftHandler{
		BaseHandler:  basehdl.NewBaseHandler[models.Shift, dto.ShiftCreateInput, dto.ShiftUpdateInput](shiftService),
		shiftService: shiftService,
		escalation:   shiftsvc.NewEscalationService(shiftService),
		aggregate:    shiftsvc.NewStatusAggregateService(shiftService),
		interest:     shiftsvc.NewInterestService(shiftService),
		assignment:   shiftsvc.NewAssignmentService(shiftService),
		shareLink:    shiftsvc.NewShareLinkService(shiftService),
	}, nil
}

// ensureCapability kiểm tra danh sách capability của caller có chứa capability yêu cầu.
// required rỗng nghĩa là chỉ cần xác thực.
func ensureCapability(caps []string, required string) error {
	if required == "" || utility.Contains(caps, required) {
		return nil
	}
	return common.NewError(
		common.ErrCodeAuthCapability,
		"Không có quyền thực hiện thao tác này",
		common.StatusForbidden,
		map[string]interface{}{"capability": required},
	)
}

// requireCapability gác capability tại handler. Các route của domain shift dùng
// chung prefix /shifts nhưng yêu cầu capability khác nhau; .Use() của Fiber v3
// match theo prefix nên middleware capability gắn theo route sẽ chặn nhầm request
// của route khác cùng prefix. Prefix chỉ mang middleware xác thực chung,
// capability kiểm tra ở đây.
func requireCapability(c fiber.Ctx, required string) error {
	caps, _ := c.Locals("capabilities").([]string)
	return ensureCapability(caps, required)
}

// userIDFromContext lấy user id do AuthMiddleware set.
func userIDFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	str, ok := c.Locals("user_id").(string)
	if !ok || str == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	id, err := primitive.ObjectIDFromHex(str)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return id, nil
}

// activeOrgIDFromContext lấy tổ chức đang hoạt động do OrganizationContextMiddleware set.
func activeOrgIDFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	str, ok := c.Locals("active_organization_id").(string)
	if !ok || str == "" {
		return primitive.NilObjectID, common.WithDetails(common.ErrNotAuthorized, map[string]interface{}{
			"reason": "thiếu organization context",
		})
	}
	id, err := primitive.ObjectIDFromHex(str)
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidFormat
	}
	return id, nil
}

// shiftIDFromParams parse :shiftId trên URI.
func shiftIDFromParams(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("shiftId"))
	if err != nil {
		return primitive.NilObjectID, common.WithDetails(common.ErrInvalidFormat, map[string]interface{}{
			"field": "shiftId",
		})
	}
	return id, nil
}

// requirePoster load ca và kiểm tra caller có quyền poster trên ca đó.
func (h *ShiftHandler) requirePoster(c fiber.Ctx, shiftID primitive.ObjectID) (models.Shift, primitive.ObjectID, error) {
	var zero models.Shift

	userID, err := userIDFromContext(c)
	if err != nil {
		return zero, primitive.NilObjectID, err
	}
	shift, err := h.shiftService.FindOneById(c.Context(), shiftID)
	if err != nil {
		return zero, primitive.NilObjectID, err
	}
	if !h.shiftService.IsPoster(c.Context(), shift, userID) {
		return zero, primitive.NilObjectID, common.WithDetails(common.ErrNotAuthorized, map[string]interface{}{
			"shiftId": shiftID.Hex(),
		})
	}
	return shift, userID, nil
}

// HandleCreate xử lý POST /shifts.
func (h *ShiftHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftManage); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		userID, err := userIDFromContext(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		orgID, err := activeOrgIDFromContext(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		input := new(dto.ShiftCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		created, err := h.shiftService.Create(c.Context(), input, orgID, userID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		logger.LogShiftAction("shift.create", created.ID.Hex(), c, map[string]interface{}{
			"slotCount": len(created.Slots),
		})
		basehdl.WriteResponse(c, created, nil)
		return nil
	})
}

// HandleGetDetail xử lý GET /shifts/:shiftId. Poster-only.
func (h *ShiftHandler) HandleGetDetail(c fiber.Ctx) error {
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
		shift, _, err := h.requirePoster(c, shiftID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		basehdl.WriteResponse(c, shift, nil)
		return nil
	})
}

// HandleList xử lý GET /shifts: danh sách ca của tổ chức đang hoạt động, phân trang.
func (h *ShiftHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		if err := requireCapability(c, middleware.CapShiftView); err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		orgID, err := activeOrgIDFromContext(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		page := int64(fiber.Query[int](c, "page", 1))
		limit := int64(fiber.Query[int](c, "limit", 10))

		result, err := h.shiftService.FindWithPagination(c.Context(),
			bson.M{"ownerOrganizationId": orgID}, page, limit, nil)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		basehdl.WriteResponse(c, result, nil)
		return nil
	})
}

// HandleClose xử lý DELETE /shifts/:shiftId: đóng ca, ledger chuyển sang chờ dọn.
func (h *ShiftHandler) HandleClose(c fiber.Ctx) error {
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

		closed, err := h.shiftService.Close(c.Context(), shiftID, userID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		logger.LogShiftAction("shift.close", shiftID.Hex(), c, nil)
		basehdl.WriteResponse(c, closed, nil)
		return nil
	})
}

// HandleAuditTrail xử lý GET /shifts/:shiftId/audit: lịch sử thao tác của ca. Poster-only.
func (h *ShiftHandler) HandleAuditTrail(c fiber.Ctx) error {
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

		trail, err := h.shiftService.Audit().ListByShift(c.Context(), shiftID)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		basehdl.WriteResponse(c, trail, nil)
		return nil
	})
}
