package middleware

import (
	"strings"

	"pharmastaff/internal/common"
	"pharmastaff/internal/global"
	"pharmastaff/internal/logger"
	"pharmastaff/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Các capability của hệ thống staffing.
// Capability được nhúng trong JWT claims khi user đăng nhập (identity service bên ngoài phát hành token).
const (
	CapShiftManage  = "shift.manage"  // Tạo ca, escalate, assign, phát hành share link
	CapShiftRespond = "shift.respond" // Ghi nhận quan tâm, xem ca công khai
	CapShiftView    = "shift.view"    // Xem danh sách ứng viên, trạng thái ca

	CapDirectoryManage = "directory.manage" // CRUD quản trị tổ chức và thành viên
	CapProfileManage   = "profile.manage"   // CRUD quản trị hồ sơ dược sĩ
)

// JwtClaims là payload của access token.
type JwtClaims struct {
	UserID       string   `json:"userId"`
	Capabilities []string `json:"capabilities"`
	jwt.RegisteredClaims
}

// AuthMiddleware middleware xác thực cho Fiber.
// Parse và verify JWT (HS256, secret từ config), lưu user_id và capabilities vào context.
// Nếu requireCapability khác rỗng, user phải có capability đó trong claims.
func AuthMiddleware(requireCapability string) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims := &JwtClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(global.MongoDB_ServerConfig.JwtSecret), nil
		})
		if err != nil || !token.Valid {
			if err != nil && strings.Contains(err.Error(), "expired") {
				HandleErrorResponse(c, common.ErrTokenExpired)
				return nil
			}
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path": c.Path(),
			}).Warn("❌ [AUTH] Invalid token")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		if claims.UserID == "" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", claims.UserID)
		c.Locals("capabilities", claims.Capabilities)

		// Nếu không yêu cầu capability cụ thể, cho phép truy cập ngay
		if requireCapability == "" {
			return c.Next()
		}

		if !utility.Contains(claims.Capabilities, requireCapability) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":    claims.UserID,
				"path":       c.Path(),
				"capability": requireCapability,
			}).Warn("❌ [AUTH] Missing capability")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCapability,
				"Không có quyền thực hiện thao tác này",
				common.StatusForbidden,
				map[string]interface{}{"capability": requireCapability},
			))
			return nil
		}

		return c.Next()
	}
}

// HasCapability kiểm tra capability trong context (set bởi AuthMiddleware).
func HasCapability(c fiber.Ctx, capability string) bool {
	caps, ok := c.Locals("capabilities").([]string)
	if !ok {
		return false
	}
	return utility.Contains(caps, capability)
}
