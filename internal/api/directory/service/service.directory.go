// Package directorysvc - service cho domain directory.
// Directory là collaborator của engine: suy ra allowedLevels cho ca tại thời điểm tạo
// và trả về danh sách thành viên đủ điều kiện theo từng tier.
package directorysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "pharmastaff/internal/api/base/service"
	"pharmastaff/internal/api/directory/models"
	shiftmodels "pharmastaff/internal/api/shift/models"
	"pharmastaff/internal/global"
)

// DirectoryService quản lý tổ chức và thành viên.
type DirectoryService struct {
	*basesvc.BaseServiceMongoImpl[models.Organization]
	memberService *basesvc.BaseServiceMongoImpl[models.OrgMember]
}

// NewDirectoryService tạo mới DirectoryService.
func NewDirectoryService() (*DirectoryService, error) {
	orgCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Organizations)
	if !exist {
		return nil, fmt.Errorf("failed to get organizations collection: %s", global.MongoDB_ColNames.Organizations)
	}
	memberCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrgMembers)
	if !exist {
		return nil, fmt.Errorf("failed to get org_members collection: %s", global.MongoDB_ColNames.OrgMembers)
	}
	return &DirectoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Organization](orgCol),
		memberService:        basesvc.NewBaseServiceMongo[models.OrgMember](memberCol),
	}, nil
}

// MemberService trả về service thao tác trên org_members.
func (s *DirectoryService) MemberService() *basesvc.BaseServiceMongoImpl[models.OrgMember] {
	return s.memberService
}

// AllowedLevelsFor suy ra tập tier mà ca của tổ chức orgID được phép đạt tới.
// Tính MỘT LẦN khi tạo ca và lưu trên shift; engine không tự tính lại.
// Quy tắc:
//   - FULL_PART_TIME, LOCUM_CASUAL, PLATFORM: luôn khả dụng.
//   - OWNER_CHAIN: tổ chức thuộc một chuỗi (có parentId) hoặc chính nó là chuỗi.
//   - ORG_CHAIN: tổ chức hoặc tổ tiên của nó là mạng lưới đã claim.
func (s *DirectoryService) AllowedLevelsFor(ctx context.Context, orgID primitive.ObjectID) ([]string, error) {
	org, err := s.FindOneById(ctx, orgID)
	if err != nil {
		return nil, err
	}

	levels := []string{shiftmodels.LevelFullPartTime, shiftmodels.LevelLocumCasual}

	inChain := org.Type == models.OrgTypeChain || !org.ParentID.IsZero()
	if inChain {
		levels = append(levels, shiftmodels.LevelOwnerChain)
	}

	claimed, err := s.hasClaimedNetwork(ctx, org)
	if err != nil {
		return nil, err
	}
	if claimed {
		levels = append(levels, shiftmodels.LevelOrgChain)
	}

	levels = append(levels, shiftmodels.LevelPlatform)
	return levels, nil
}

// hasClaimedNetwork kiểm tra org hoặc một tổ tiên của nó là mạng lưới đã claim.
// Directory nông (pharmacy → chain → network) nên giới hạn 3 bậc là đủ.
func (s *DirectoryService) hasClaimedNetwork(ctx context.Context, org models.Organization) (bool, error) {
	current := org
	for depth := 0; depth < 3; depth++ {
		if current.OrgClaimed && current.Type == models.OrgTypeNetwork {
			return true, nil
		}
		if current.ParentID.IsZero() {
			return false, nil
		}
		parent, err := s.FindOneById(ctx, current.ParentID)
		if err != nil {
			return false, err
		}
		current = parent
	}
	return false, nil
}

// EligibleMembers trả về danh sách thành viên đủ điều kiện thấy ca của orgID tại tier level.
// Tier PLATFORM không có danh sách thành viên (công khai), trả về rỗng.
func (s *DirectoryService) EligibleMembers(ctx context.Context, orgID primitive.ObjectID, level string) ([]models.OrgMember, error) {
	switch level {
	case shiftmodels.LevelFullPartTime:
		return s.memberService.Find(ctx, bson.M{
			"organizationId": orgID,
			"employmentType": bson.M{"$in": []string{models.EmploymentFullTime, models.EmploymentPartTime}},
		}, nil)

	case shiftmodels.LevelLocumCasual:
		return s.memberService.Find(ctx, bson.M{
			"organizationId": orgID,
			"employmentType": bson.M{"$in": []string{models.EmploymentLocum, models.EmploymentCasual}},
		}, nil)

	case shiftmodels.LevelOwnerChain:
		siblings, err := s.siblingOrgIDs(ctx, orgID)
		if err != nil {
			return nil, err
		}
		return s.memberService.Find(ctx, bson.M{
			"organizationId": bson.M{"$in": siblings},
		}, nil)

	case shiftmodels.LevelOrgChain:
		network, err := s.networkOrgIDs(ctx, orgID)
		if err != nil {
			return nil, err
		}
		return s.memberService.Find(ctx, bson.M{
			"organizationId": bson.M{"$in": network},
		}, nil)

	default:
		return []models.OrgMember{}, nil
	}
}

// siblingOrgIDs trả về các tổ chức cùng chuỗi (kể cả chính nó).
func (s *DirectoryService) siblingOrgIDs(ctx context.Context, orgID primitive.ObjectID) ([]primitive.ObjectID, error) {
	org, err := s.FindOneById(ctx, orgID)
	if err != nil {
		return nil, err
	}

	chainID := org.ParentID
	if org.Type == models.OrgTypeChain {
		chainID = org.ID
	}
	if chainID.IsZero() {
		return []primitive.ObjectID{orgID}, nil
	}

	siblings, err := s.Find(ctx, bson.M{"parentId": chainID}, nil)
	if err != nil {
		return nil, err
	}

	ids := []primitive.ObjectID{chainID}
	for _, sib := range siblings {
		ids = append(ids, sib.ID)
	}
	return ids, nil
}

// networkOrgIDs trả về mọi tổ chức thuộc mạng lưới chứa orgID (2 bậc: network → chain → pharmacy).
func (s *DirectoryService) networkOrgIDs(ctx context.Context, orgID primitive.ObjectID) ([]primitive.ObjectID, error) {
	org, err := s.FindOneById(ctx, orgID)
	if err != nil {
		return nil, err
	}

	// Leo lên gốc mạng lưới
	root := org
	for depth := 0; depth < 3 && !root.ParentID.IsZero(); depth++ {
		parent, err := s.FindOneById(ctx, root.ParentID)
		if err != nil {
			return nil, err
		}
		root = parent
	}

	ids := []primitive.ObjectID{root.ID}
	children, err := s.Find(ctx, bson.M{"parentId": root.ID}, nil)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		ids = append(ids, child.ID)
		grandchildren, err := s.Find(ctx, bson.M{"parentId": child.ID}, nil)
		if err != nil {
			return nil, err
		}
		for _, gc := range grandchildren {
			ids = append(ids, gc.ID)
		}
	}
	return ids, nil
}

// IsMemberOf kiểm tra user có membership trong tổ chức không.
func (s *DirectoryService) IsMemberOf(ctx context.Context, userID, orgID primitive.ObjectID) (bool, error) {
	return s.memberService.DocumentExists(ctx, bson.M{
		"userId":         userID,
		"organizationId": orgID,
	})
}
