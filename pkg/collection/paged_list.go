// Package collection contiene la paginación en memoria compartida por los servicios.
package collection

import (
	"cmp"
	"errors"
	"slices"
)

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 100
)

var (
	ErrInvalidPage         = errors.New("The page can not be less than 1.")
	ErrInvalidItemsPerPage = errors.New("The items per page can not be less than 1.")
)

// PagedList vista paginada de una colección con sus metadatos.
type PagedList[T any] struct {
	Items        []T   `json:"items"`
	TotalCount   int64 `json:"totalCount"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	OrderedAsc   bool  `json:"orderAsc"`
}

// NewPagedList construye la página calculando TotalPages (mínimo 1).
// Items nulo se normaliza a vacío.
func NewPagedList[T any](items []T, currentPage, itemsPerPage int, totalCount int64, orderedAsc bool) PagedList[T] {
	if items == nil {
		items = []T{}
	}
	return PagedList[T]{
		Items:        items,
		TotalCount:   totalCount,
		TotalPages:   TotalPages(totalCount, itemsPerPage),
		CurrentPage:  currentPage,
		ItemsPerPage: itemsPerPage,
		OrderedAsc:   orderedAsc,
	}
}

// TotalPages calcula ceil(count/itemsPerPage); una colección vacía tiene una página.
func TotalPages(totalCount int64, itemsPerPage int) int {
	if totalCount <= 0 || itemsPerPage <= 0 {
		return 1
	}
	return int((totalCount-1)/int64(itemsPerPage) + 1)
}

// ValidatePaging valida los parámetros de página compartidos por la paginación
// en memoria y la de base de datos.
func ValidatePaging(page, itemsPerPage int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	if itemsPerPage < 1 {
		return ErrInvalidItemsPerPage
	}
	return nil
}

// Offset devuelve cuántos elementos se saltan para llegar a la página.
func Offset(page, itemsPerPage int) int {
	return (page - 1) * itemsPerPage
}

// ToPagedList ordena source de forma estable por key y devuelve la página pedida.
// source no se modifica.
func ToPagedList[T any, K cmp.Ordered](source []T, key func(T) K, page, itemsPerPage int, orderedAsc bool) (PagedList[T], error) {
	if err := ValidatePaging(page, itemsPerPage); err != nil {
		return PagedList[T]{}, err
	}

	sorted := slices.Clone(source)
	slices.SortStableFunc(sorted, func(a, b T) int {
		if orderedAsc {
			return cmp.Compare(key(a), key(b))
		}
		return cmp.Compare(key(b), key(a))
	})

	start := min(Offset(page, itemsPerPage), len(sorted))
	end := min(start+itemsPerPage, len(sorted))

	return NewPagedList(sorted[start:end:end], page, itemsPerPage, int64(len(source)), orderedAsc), nil
}

// Map transforma los elementos conservando los metadatos de paginación.
func Map[T, U any](list PagedList[T], fn func(T) U) PagedList[U] {
	items := make([]U, 0, len(list.Items))
	for _, it := range list.Items {
		items = append(items, fn(it))
	}
	return PagedList[U]{
		Items:        items,
		TotalCount:   list.TotalCount,
		TotalPages:   list.TotalPages,
		CurrentPage:  list.CurrentPage,
		ItemsPerPage: list.ItemsPerPage,
		OrderedAsc:   list.OrderedAsc,
	}
}
