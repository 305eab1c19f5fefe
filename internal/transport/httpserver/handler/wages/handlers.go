package wages

import (
	employeedomain "shiftboard-go/internal/domain/employee"
	groupdomain "shiftboard-go/internal/domain/group"
	userdomain "shiftboard-go/internal/domain/user"
	wagedomain "shiftboard-go/internal/domain/wage"
	"shiftboard-go/pkg/logger"
)

type Handlers struct {
	Wages     *wagedomain.Service
	Users     *userdomain.Service
	Employees *employeedomain.Service
	Groups    *groupdomain.Service
	log       logger.Logger
}

func New(wages *wagedomain.Service, users *userdomain.Service, employees *employeedomain.Service, groups *groupdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Wages:     wages,
		Users:     users,
		Employees: employees,
		Groups:    groups,
		log:       log,
	}
}
