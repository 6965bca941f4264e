package postgres

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/domain"
)

const (
	argLimit  = "page_limit"
	argOffset = "page_offset"
)

// PageQuery describe una consulta paginada. Table, Columns y OrderBy se escapan
// como identificadores; Where es SQL del llamador con argumentos @nombre en Args.
type PageQuery struct {
	Table        string
	Columns      []string
	Where        string
	Args         pgx.NamedArgs
	OrderBy      string
	Page         int
	ItemsPerPage int
	OrderedAsc   bool
}

// Build arma el SQL de conteo, el de la página y sus argumentos.
func (p PageQuery) Build() (countSQL, pageSQL string, args pgx.NamedArgs, err error) {
	if err := collection.ValidatePaging(p.Page, p.ItemsPerPage); err != nil {
		return "", "", nil, err
	}
	if p.Table == "" {
		return "", "", nil, fmt.Errorf("%w: falta la tabla", domain.ErrInvalidInput)
	}
	if p.OrderBy == "" {
		return "", "", nil, fmt.Errorf("%w: falta la columna de orden", domain.ErrInvalidInput)
	}

	from := " FROM " + quoteQualified(p.Table)
	if w := strings.TrimSpace(p.Where); w != "" {
		from += " WHERE " + w
	}
	dir := "DESC"
	if p.OrderedAsc {
		dir = "ASC"
	}

	countSQL = "SELECT count(*)" + from
	pageSQL = "SELECT " + columnList(p.Columns) + from +
		" ORDER BY " + quote(p.OrderBy) + " " + dir +
		" LIMIT @" + argLimit + " OFFSET @" + argOffset

	args = make(pgx.NamedArgs, len(p.Args)+2)
	maps.Copy(args, p.Args)
	args[argLimit] = p.ItemsPerPage
	args[argOffset] = collection.Offset(p.Page, p.ItemsPerPage)
	return countSQL, pageSQL, args, nil
}

// ToPagedList cuenta las filas y devuelve la página pedida con sus metadatos,
// con la misma validación que collection.ToPagedList.
func ToPagedList[T any](ctx context.Context, q Querier, p PageQuery) (collection.PagedList[T], error) {
	countSQL, pageSQL, args, err := p.Build()
	if err != nil {
		return collection.PagedList[T]{}, err
	}

	var total int64
	if err := q.QueryRow(ctx, countSQL, namedArgs(p.Args)...).Scan(&total); err != nil {
		return collection.PagedList[T]{}, translate("count "+p.Table, err)
	}

	var items []T
	if total > int64(collection.Offset(p.Page, p.ItemsPerPage)) {
		items, err = QueryRaw[T](ctx, q, pageSQL, args)
		if err != nil {
			return collection.PagedList[T]{}, err
		}
	}
	return collection.NewPagedList(items, p.Page, p.ItemsPerPage, total, p.OrderedAsc), nil
}
