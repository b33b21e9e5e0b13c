package shifthdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "pharmastaff/internal/api/base/handler"
	"pharmastaff/internal/common"
)

// HandlePublicView xử lý GET /public/shifts/:token — không auth.
// Trả về hình chiếu công khai của ca: không tổ chức, không poster,
// không ledger, không định danh cá nhân.
func (h *ShiftHandler) HandlePublicView(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		token := c.Params("token")
		if token == "" {
			basehdl.WriteResponse(c, nil, common.WithDetails(common.ErrRequiredField, map[string]interface{}{
				"field": "token",
			}))
			return nil
		}

		view, err := h.shareLink.ResolveToken(c.Context(), token)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}
		basehdl.WriteResponse(c, view, nil)
		return nil
	})
}
