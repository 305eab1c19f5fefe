package swaps

import (
	swapdomain "shiftboard-go/internal/domain/swap"
	userdomain "shiftboard-go/internal/domain/user"
	"shiftboard-go/pkg/logger"
)

type Handlers struct {
	Swaps *swapdomain.Service
	Users *userdomain.Service
	log   logger.Logger
}

func New(swaps *swapdomain.Service, users *userdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Swaps: swaps,
		Users: users,
		log:   log,
	}
}
