package models

import "github.com/google/uuid"

// Category: категория каталога
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Product представляет товар каталога, сервис его только читает
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	Brand       string    `json:"brand"`
	Category    *Category `json:"category"` // nil, если категория не задана
}

// ProductRef: краткое представление товара для вложения в другие ответы
type ProductRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Unit  string    `json:"unit,omitempty"`
	Brand string    `json:"brand,omitempty"`
}

// ProductFilter: параметры поиска по каталогу
type ProductFilter struct {
	Query      string
	CategoryID *uuid.UUID
	Brand      string
	Unit       string
	Limit      int
	Offset     int
}
