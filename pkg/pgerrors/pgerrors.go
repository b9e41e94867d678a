package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, на которые реагирует сервис
const (
	CodeUniqueViolation      pq.ErrorCode = "23505"
	CodeForeignKeyViolation  pq.ErrorCode = "23503"
	CodeSerializationFailure pq.ErrorCode = "40001"
	CodeDeadlockDetected     pq.ErrorCode = "40P01"
)

// UniqueViolation возвращает имя нарушенного ограничения, если err является unique_violation
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == CodeUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// IsSerializationFailure true для конфликтов сериализуемых транзакций и дедлоков
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == CodeSerializationFailure || pqErr.Code == CodeDeadlockDetected
}

// IsForeignKeyViolation true, если запись ссылается на несуществующую строку
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == CodeForeignKeyViolation
}
