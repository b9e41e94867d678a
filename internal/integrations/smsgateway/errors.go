package smsgateway

import "errors"

var (
	// ErrNotConfigured возвращается, когда не задан URL шлюза
	ErrNotConfigured = errors.New("smsgateway client: gateway url is not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("smsgateway client: invalid response")

	// ErrRejected возвращается, когда шлюз отклонил сообщение (4xx)
	ErrRejected = errors.New("smsgateway client: message rejected")
)
