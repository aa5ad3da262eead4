package user

import (
	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/entities"
)

func ToAuthor(u *entities.User) domain.Author {
	if u == nil {
		return domain.Author{}
	}
	return domain.Author{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
}
