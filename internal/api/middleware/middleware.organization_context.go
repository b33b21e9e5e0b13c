package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmastaff/internal/global"
)

// OrganizationContextMiddleware middleware để quản lý organization context.
// - Đọc X-Active-Organization-ID từ header
// - Validate user là thành viên của tổ chức đó (collection org_members)
// - Lưu active_organization_id vào context
// Nếu không có header, fallback về membership đầu tiên của user.
func OrganizationContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy user ID từ context (đã được set bởi AuthMiddleware)
		userIDStr, ok := c.Locals("user_id").(string)
		if !ok || userIDStr == "" {
			// Không có user ID, có thể là route không cần auth
			// Cho phép tiếp tục nhưng không set organization context
			return c.Next()
		}

		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			return c.Next()
		}

		activeOrgIDStr := c.Get("X-Active-Organization-ID")
		var activeOrgID primitive.ObjectID

		if activeOrgIDStr != "" {
			activeOrgID, err = primitive.ObjectIDFromHex(activeOrgIDStr)
			if err != nil {
				// Org ID không hợp lệ, fallback về membership đầu tiên
				activeOrgID, err = getFirstUserOrgID(context.Background(), userID)
				if err != nil {
					return c.Next()
				}
			} else {
				// Validate user là thành viên của org này
				isMember, err := validateUserInOrg(context.Background(), userID, activeOrgID)
				if err != nil || !isMember {
					activeOrgID, err = getFirstUserOrgID(context.Background(), userID)
					if err != nil {
						return c.Next()
					}
				}
			}
		} else {
			// Không có header, lấy membership đầu tiên của user
			activeOrgID, err = getFirstUserOrgID(context.Background(), userID)
			if err != nil {
				return c.Next()
			}
		}

		c.Locals("active_organization_id", activeOrgID.Hex())
		return c.Next()
	}
}

// validateUserInOrg kiểm tra user có membership trong org không
func validateUserInOrg(ctx context.Context, userID, orgID primitive.ObjectID) (bool, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrgMembers)
	if !exist {
		return false, nil
	}

	count, err := collection.CountDocuments(ctx, bson.M{
		"userId":         userID,
		"organizationId": orgID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// getFirstUserOrgID lấy org ID của membership đầu tiên của user
func getFirstUserOrgID(ctx context.Context, userID primitive.ObjectID) (primitive.ObjectID, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrgMembers)
	if !exist {
		return primitive.NilObjectID, nil
	}

	var member struct {
		OrganizationID primitive.ObjectID `bson:"organizationId"`
	}
	err := collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&member)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return member.OrganizationID, nil
}
