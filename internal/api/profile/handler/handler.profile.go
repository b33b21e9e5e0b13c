// Package profilehdl - handler CRUD quản trị cho domain profile.
// Hồ sơ dược sĩ được quản trị qua mặt CRUD chuẩn của base handler,
// gác bởi profile.manage. Luồng reveal đọc hồ sơ qua shiftsvc, không qua đây.
package profilehdl

import (
	basehdl "pharmastaff/internal/api/base/handler"
	"pharmastaff/internal/api/profile/dto"
	"pharmastaff/internal/api/profile/models"
	profilesvc "pharmastaff/internal/api/profile/service"
)

// ProfileHandler xử lý CRUD trên collection profiles.
type ProfileHandler struct {
	*basehdl.BaseHandler[models.Profile, dto.ProfileCreateInput, dto.ProfileUpdateInput]
}

// NewProfileHandler tạo mới ProfileHandler.
func NewProfileHandler() (*ProfileHandler, error) {
	svc, err := profilesvc.NewProfileService()
	if err != nil {
		return nil, err
	}
	return &ProfileHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Profile, dto.ProfileCreateInput, dto.ProfileUpdateInput](svc),
	}, nil
}
