package service

import "errors"

var (
	ErrPropertyNotFound  = errors.New("property not found")
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
)
