package errors

import "errors"

// Общие ошибки приложения. Транспортный слой сам решает, в какой статус их превратить.
var (
	// ErrNotFound используется, когда запись или ресурс не найдены
	// (пустой каталог, неизвестная категория, категория без вопросов).
	ErrNotFound = errors.New("resource not found")

	// ErrValidation используется для ошибок валидации входных данных
	// (пустые поля при создании вопроса, номер страницы < 1).
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется, когда хранилище не смогло выполнить запись (создание/удаление).
	ErrConflict = errors.New("unprocessable")

	// ErrDataIntegrity используется, когда данные в хранилище противоречат инвариантам,
	// например вопрос ссылается на несуществующую категорию.
	ErrDataIntegrity = errors.New("data integrity violation")
)
