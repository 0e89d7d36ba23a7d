package dto

import (
	"tourizto/internal/domains/user/model"
	"tourizto/shared"
	"tourizto/shared/constant"
	gDto "tourizto/shared/dto"
	"tourizto/shared/timezone"
)

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	LastLogin string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Role = mod.Role
	r.Status = mod.Status

	if mod.LastLogin != nil {
		r.LastLogin = timezone.Format(*mod.LastLogin, constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type UpdateUserStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=active inactive suspended"`
}

type UpdateUserRoleRequest struct {
	Role string `db:"role" json:"role" validate:"required,oneof=admin user"`
}
