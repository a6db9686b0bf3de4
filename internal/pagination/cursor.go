// Package pagination реализует кейсет-пагинацию по паре (created_at, id).
// Курсор кодируется в непрозрачный base64-токен; SQL-предикаты строятся
// через squirrel и в точности соответствуют порядку сортировки — это и
// делает курсор стабильной точкой продолжения при конкурентных вставках.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCursor — битый или подделанный токен курсора.
// Отличим от not_found и server error; наружу маппится как ошибка клиента.
var ErrInvalidCursor = errors.New("invalid cursor format")

// Cursor задаёт позицию в строгом тотальном порядке (created_at, id).
// Живёт в рамках одного запроса, никогда не персистится.
type Cursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        uuid.UUID `json:"id"`
}

// wire-форма: канонический текст, чтобы encode был детерминирован
type cursorWire struct {
	CreatedAt string `json:"created_at"`
	ID        string `json:"id"`
}

// Encode сериализует курсор в компактный base64-токен.
// Формат токена — непрозрачный для клиентов, стабильность не гарантируем.
func (c Cursor) Encode() string {
	w := cursorWire{
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        c.ID.String(),
	}
	raw, _ := json.Marshal(w) // поля фиксированы, ошибка невозможна
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeCursor разбирает токен и валидирует оба поля.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var w cursorWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if w.CreatedAt == "" || w.ID == "" {
		return Cursor{}, fmt.Errorf("%w: missing fields", ErrInvalidCursor)
	}
	ts, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: bad timestamp: %v", ErrInvalidCursor, err)
	}
	id, err := uuid.Parse(w.ID)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: bad id: %v", ErrInvalidCursor, err)
	}
	return Cursor{CreatedAt: ts, ID: id}, nil
}
