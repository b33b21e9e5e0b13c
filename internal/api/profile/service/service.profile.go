// Package profilesvc - service cho domain profile (hồ sơ dược sĩ).
package profilesvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "pharmastaff/internal/api/base/service"
	"pharmastaff/internal/api/profile/models"
	"pharmastaff/internal/global"
)

// ProfileService là service quản lý hồ sơ dược sĩ.
// Kế thừa từ BaseServiceMongo với Profile model.
type ProfileService struct {
	*basesvc.BaseServiceMongoImpl[models.Profile]
}

// NewProfileService tạo mới ProfileService.
func NewProfileService() (*ProfileService, error) {
	profileCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Profiles)
	if !exist {
		return nil, fmt.Errorf("failed to get profiles collection: %s", global.MongoDB_ColNames.Profiles)
	}
	return &ProfileService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Profile](profileCol),
	}, nil
}

// FindByUserID tìm hồ sơ theo user ID.
func (s *ProfileService) FindByUserID(ctx context.Context, userID primitive.ObjectID) (models.Profile, error) {
	return s.FindOne(ctx, bson.M{"userId": userID}, nil)
}

// Snapshot trả về bản chụp hồ sơ cho luồng reveal.
// Nếu user chưa có hồ sơ, trả về snapshot chỉ chứa userId (vẫn reveal được, không lỗi).
func (s *ProfileService) Snapshot(ctx context.Context, userID primitive.ObjectID) models.ProfileSnapshot {
	profile, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return models.ProfileSnapshot{UserID: userID}
	}
	return models.ProfileSnapshot{
		UserID:         profile.UserID,
		FullName:       profile.FullName,
		Phone:          profile.Phone,
		Email:          profile.Email,
		LicenseNumber:  profile.LicenseNumber,
		YearsExp:       profile.YearsExp,
		Bio:            profile.Bio,
		Resume:         profile.Resume,
		RatePreference: profile.RatePreference,
		RatingAvg:      profile.RatingAvg,
		RatingCount:    profile.RatingCount,
	}
}

// RatingOf trả về rating trung bình của user, nil nếu chưa có hồ sơ hoặc chưa có đánh giá.
// Dùng cho tie-break của aggregator.
func (s *ProfileService) RatingOf(ctx context.Context, userID primitive.ObjectID) *float64 {
	profile, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	return profile.RatingAvg
}
