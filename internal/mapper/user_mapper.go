package mapper

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToProfile(u *entity.User) *dto.ProfileResponse {
	if u == nil {
		return nil
	}
	return &dto.ProfileResponse{
		Id:        u.Id,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  string(u.UserType),
		CreatedAt: u.CreatedAt,
	}
}
