package shifts

import (
	employeedomain "shiftboard-go/internal/domain/employee"
	shiftdomain "shiftboard-go/internal/domain/shift"
	userdomain "shiftboard-go/internal/domain/user"
	"shiftboard-go/pkg/logger"
)

type Handlers struct {
	Shifts    *shiftdomain.Service
	Users     *userdomain.Service
	Employees *employeedomain.Service
	log       logger.Logger
}

func New(shifts *shiftdomain.Service, users *userdomain.Service, employees *employeedomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Shifts:    shifts,
		Users:     users,
		Employees: employees,
		log:       log,
	}
}
