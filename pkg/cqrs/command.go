package cqrs

import "github.com/jhoicas/shared-api/pkg/collection"

// Command base de los comandos que producen una respuesta R. Se embebe en el
// comando concreto:
//
//	type CreateOrder struct {
//		cqrs.Command[result.ResultOf[uuid.UUID]]
//		Items []Item `json:"items" validate:"any_items=required"`
//	}
type Command[R any] struct {
	Request
	Identity
}

func (Command[R]) response(R) {}

// Query base de las consultas.
type Query[R any] struct {
	Command[R]
}

// QueryList base de las consultas paginadas. Los valores cero toman los
// valores por defecto (página 1, 100 elementos, ascendente).
type QueryList[R any] struct {
	Command[R]
	Page         int   `json:"page" query:"page"`
	ItemsPerPage int   `json:"itemsPerPage" query:"itemsPerPage"`
	OrderedAsc   *bool `json:"orderedAsc,omitempty" query:"orderedAsc"`
}

// Paging devuelve los parámetros efectivos de paginación.
func (q QueryList[R]) Paging() (page, itemsPerPage int, orderedAsc bool) {
	page, itemsPerPage, orderedAsc = q.Page, q.ItemsPerPage, true
	if page == 0 {
		page = collection.DefaultPage
	}
	if itemsPerPage == 0 {
		itemsPerPage = collection.DefaultItemsPerPage
	}
	if q.OrderedAsc != nil {
		orderedAsc = *q.OrderedAsc
	}
	return page, itemsPerPage, orderedAsc
}

// Notification base de los eventos publicados con Publish.
type Notification struct {
	Request
}
