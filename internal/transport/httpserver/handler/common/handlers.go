package common

import (
	employeedomain "shiftboard-go/internal/domain/employee"
	groupdomain "shiftboard-go/internal/domain/group"
	userdomain "shiftboard-go/internal/domain/user"
	"shiftboard-go/pkg/logger"
	authtoken "shiftboard-go/pkg/token"
)

type Handlers struct {
	Users     *userdomain.Service
	Employees *employeedomain.Service
	Groups    *groupdomain.Service
	Tokens    *authtoken.Issuer
	log       logger.Logger
}

func New(users *userdomain.Service, employees *employeedomain.Service, groups *groupdomain.Service, tokens *authtoken.Issuer, log logger.Logger) *Handlers {
	return &Handlers{
		Users:     users,
		Employees: employees,
		Groups:    groups,
		Tokens:    tokens,
		log:       log,
	}
}
