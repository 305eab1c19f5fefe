package handler

import (
	commonhandler "shiftboard-go/internal/transport/httpserver/handler/common"
	shiftshandler "shiftboard-go/internal/transport/httpserver/handler/shifts"
	swapshandler "shiftboard-go/internal/transport/httpserver/handler/swaps"
	wageshandler "shiftboard-go/internal/transport/httpserver/handler/wages"
)

type Handlers struct {
	Common *commonhandler.Handlers
	Shifts *shiftshandler.Handlers
	Wages  *wageshandler.Handlers
	Swaps  *swapshandler.Handlers
}

func New(common *commonhandler.Handlers, shifts *shiftshandler.Handlers, wages *wageshandler.Handlers, swaps *swapshandler.Handlers) *Handlers {
	return &Handlers{
		Common: common,
		Shifts: shifts,
		Wages:  wages,
		Swaps:  swaps,
	}
}
