package notifyservice

import "errors"

var (
	// ErrInternal возвращается при ошибках доставки уведомления
	ErrInternal = errors.New("notifyservice: internal error")
)
