package user

import (
	"github.com/devNatanFrei/e-commerce/internal/model"
)

type User struct {
	model.Model

	Email        string
	PasswordHash string
	IsSuperuser  bool
}
