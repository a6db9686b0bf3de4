package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")          // 400
	ErrBadCursor        = errors.New("invalid_cursor")      // 400, отдельно от bad_params — битый токен пагинации
	ErrNotFound         = errors.New("not_found")           // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed")  // 405
	ErrRateLimited      = errors.New("rate_limit_exceeded") // 429
	ErrUnexpected       = errors.New("unexpected")          // 500
)

// Коды для конверта ответа
const (
	ErrCodeBadParams        = 400
	ErrCodeBadCursor        = 4001
	ErrCodeNotFound         = 404
	ErrCodeMethodNotAllowed = 405
	ErrCodeRateLimited      = 429
	ErrCodeUnexpected       = 500
)
