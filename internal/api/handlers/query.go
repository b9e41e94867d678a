package handlers

import (
	"fmt"
	"net/url"
	"strconv"
)

// QueryInt64 необязательный положительный целочисленный параметр. Пустое значение дает nil
func QueryInt64(query url.Values, key string) (*int64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", key)
	}
	return &v, nil
}

// QueryInt то же для int
func QueryInt(query url.Values, key string) (*int, error) {
	v, err := QueryInt64(query, key)
	if err != nil || v == nil {
		return nil, err
	}
	i := int(*v)
	return &i, nil
}

// QueryBool необязательный параметр true/false
func QueryBool(query url.Values, key string) (*bool, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &v, nil
}
