// Package directoryhdl - handler CRUD quản trị cho domain directory.
// Directory không có nghiệp vụ riêng phía HTTP: tổ chức và thành viên được
// quản trị qua mặt CRUD chuẩn của base handler, gác bởi directory.manage.
package directoryhdl

import (
	basehdl "pharmastaff/internal/api/base/handler"
	"pharmastaff/internal/api/directory/dto"
	"pharmastaff/internal/api/directory/models"
	directorysvc "pharmastaff/internal/api/directory/service"
)

// OrganizationHandler xử lý CRUD trên collection organizations.
type OrganizationHandler struct {
	*basehdl.BaseHandler[models.Organization, dto.OrganizationCreateInput, dto.OrganizationUpdateInput]
}

// NewOrganizationHandler tạo mới OrganizationHandler.
func NewOrganizationHandler() (*OrganizationHandler, error) {
	svc, err := directorysvc.NewDirectoryService()
	if err != nil {
		return nil, err
	}
	return &OrganizationHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Organization, dto.OrganizationCreateInput, dto.OrganizationUpdateInput](svc),
	}, nil
}

// OrgMemberHandler xử lý CRUD trên collection org_members.
type OrgMemberHandler struct {
	*basehdl.BaseHandler[models.OrgMember, dto.OrgMemberCreateInput, dto.OrgMemberUpdateInput]
}

// NewOrgMemberHandler tạo mới OrgMemberHandler.
func NewOrgMemberHandler() (*OrgMemberHandler, error) {
	svc, err := directorysvc.NewDirectoryService()
	if err != nil {
		return nil, err
	}
	return &OrgMemberHandler{
		BaseHandler: basehdl.NewBaseHandler[models.OrgMember, dto.OrgMemberCreateInput, dto.OrgMemberUpdateInput](svc.MemberService()),
	}, nil
}
