package get_available_technicians

import (
	"context"

	getAvailableTechnicians "github.com/auracontrol/AC-BookingService/internal/usecase/get_available_technicians"
)

type GetAvailableTechniciansUseCase interface {
	Execute(ctx context.Context, req *getAvailableTechnicians.Request) (*getAvailableTechnicians.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
