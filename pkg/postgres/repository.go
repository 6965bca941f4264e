package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/domain"
)

// ErrInvalidTable descriptor de tabla incompleto.
var ErrInvalidTable = errors.New("descriptor de tabla inválido")

// Table describe cómo persistir T. Columns incluye Key y está en el mismo orden
// que los valores devueltos por Values. Las columnas se leen por nombre (tag db).
type Table[T any] struct {
	Name    string // "tabla" o "esquema.tabla"
	Key     string
	Columns []string
	Values  func(T) []any
}

// Validate comprueba que el descriptor pueda generar SQL.
func (t Table[T]) Validate() error {
	switch {
	case t.Name == "":
		return fmt.Errorf("%w: falta el nombre", ErrInvalidTable)
	case !slices.Contains(t.Columns, t.Key):
		return fmt.Errorf("%w: la clave %q no está en las columnas", ErrInvalidTable, t.Key)
	case t.Values == nil:
		return fmt.Errorf("%w: falta Values", ErrInvalidTable)
	}
	return nil
}

// SelectSQL SELECT de todas las columnas.
func (t Table[T]) SelectSQL() string {
	return "SELECT " + columnList(t.Columns) + " FROM " + quoteQualified(t.Name)
}

// GetSQL SELECT por clave.
func (t Table[T]) GetSQL() string {
	return t.SelectSQL() + " WHERE " + quote(t.Key) + " = $1"
}

// InsertSQL INSERT con un parámetro por columna.
func (t Table[T]) InsertSQL() string {
	params := make([]string, len(t.Columns))
	for i := range t.Columns {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO " + quoteQualified(t.Name) + " (" + columnList(t.Columns) + ") VALUES (" + strings.Join(params, ", ") + ")"
}

// UpdateSQL UPDATE de las columnas que no son clave; $1 es la clave.
func (t Table[T]) UpdateSQL() string {
	var sets []string
	n := 2
	for _, c := range t.Columns {
		if c == t.Key {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", quote(c), n))
		n++
	}
	return "UPDATE " + quoteQualified(t.Name) + " SET " + strings.Join(sets, ", ") + " WHERE " + quote(t.Key) + " = $1"
}

// DeleteSQL DELETE por clave.
func (t Table[T]) DeleteSQL() string {
	return "DELETE FROM " + quoteQualified(t.Name) + " WHERE " + quote(t.Key) + " = $1"
}

// UpdateArgs ordena los valores de item como los espera UpdateSQL.
func (t Table[T]) UpdateArgs(item T) []any {
	values := t.Values(item)
	args := make([]any, 1, len(values))
	for i, c := range t.Columns {
		if c == t.Key {
			args[0] = values[i]
			continue
		}
		args = append(args, values[i])
	}
	return args
}

// Repository CRUD genérico sobre una tabla. Usable con pool o tx (Querier).
type Repository[T any] struct {
	q     Querier
	table Table[T]
}

// NewRepository construye el repositorio. Falla si el descriptor es inválido.
func NewRepository[T any](q Querier, table Table[T]) (*Repository[T], error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Repository[T]{q: q, table: table}, nil
}

// With devuelve el mismo repositorio atado a otro Querier, típicamente la tx de UnitOfWork.Run.
func (r *Repository[T]) With(q Querier) *Repository[T] {
	return &Repository[T]{q: q, table: r.table}
}

// Table devuelve el descriptor.
func (r *Repository[T]) Table() Table[T] { return r.table }

// Get obtiene un registro por clave. domain.ErrNotFound si no existe.
func (r *Repository[T]) Get(ctx context.Context, id any) (T, error) {
	var zero T
	rows, err := r.q.Query(ctx, r.table.GetSQL(), id)
	if err != nil {
		return zero, translate("get "+r.table.Name, err)
	}
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return zero, translate("get "+r.table.Name, err)
	}
	return item, nil
}

// GetAll lista todos los registros.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return QueryRaw[T](ctx, r.q, r.table.SelectSQL(), nil)
}

// Add inserta item. domain.ErrDuplicate ante una violación de unicidad.
func (r *Repository[T]) Add(ctx context.Context, item T) error {
	_, err := r.q.Exec(ctx, r.table.InsertSQL(), r.table.Values(item)...)
	return translate("insert "+r.table.Name, err)
}

// AddRange inserta los items en un solo batch.
func (r *Repository[T]) AddRange(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	sql := r.table.InsertSQL()
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(sql, r.table.Values(it)...)
	}
	_, err := r.execBatch(ctx, batch)
	return translate("insert "+r.table.Name, err)
}

// Update actualiza las columnas no clave. domain.ErrNotFound si no afectó filas.
func (r *Repository[T]) Update(ctx context.Context, item T) error {
	tag, err := r.q.Exec(ctx, r.table.UpdateSQL(), r.table.UpdateArgs(item)...)
	if err != nil {
		return translate("update "+r.table.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s: %w", r.table.Name, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina por clave. domain.ErrNotFound si no afectó filas.
func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	tag, err := r.q.Exec(ctx, r.table.DeleteSQL(), id)
	if err != nil {
		return translate("delete "+r.table.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s: %w", r.table.Name, domain.ErrNotFound)
	}
	return nil
}

// DeleteRange elimina por clave en un solo batch y devuelve las filas afectadas.
func (r *Repository[T]) DeleteRange(ctx context.Context, ids ...any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	sql := r.table.DeleteSQL()
	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(sql, id)
	}
	n, err := r.execBatch(ctx, batch)
	return n, translate("delete "+r.table.Name, err)
}

// ExecRaw ejecuta SQL arbitrario con argumentos nombrados (@nombre).
func (r *Repository[T]) ExecRaw(ctx context.Context, sql string, args pgx.NamedArgs) (int64, error) {
	return ExecRaw(ctx, r.q, sql, args)
}

// Page devuelve una página de la tabla. Table y Columns se completan con el descriptor.
func (r *Repository[T]) Page(ctx context.Context, p PageQuery) (collection.PagedList[T], error) {
	if p.Table == "" {
		p.Table = r.table.Name
	}
	if len(p.Columns) == 0 {
		p.Columns = r.table.Columns
	}
	return ToPagedList[T](ctx, r.q, p)
}

func (r *Repository[T]) execBatch(ctx context.Context, batch *pgx.Batch) (int64, error) {
	br := r.q.SendBatch(ctx, batch)
	var affected int64
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return affected, err
		}
		affected += tag.RowsAffected()
	}
	return affected, br.Close()
}

// ExecRaw ejecuta SQL arbitrario con argumentos nombrados (@nombre).
func ExecRaw(ctx context.Context, q Querier, sql string, args pgx.NamedArgs) (int64, error) {
	tag, err := q.Exec(ctx, sql, namedArgs(args)...)
	if err != nil {
		return 0, translate("exec", err)
	}
	return tag.RowsAffected(), nil
}

// QueryRaw ejecuta una consulta arbitraria y mapea cada fila a T por nombre de columna.
func QueryRaw[T any](ctx context.Context, q Querier, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := q.Query(ctx, sql, namedArgs(args)...)
	if err != nil {
		return nil, translate("query", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, translate("query", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func namedArgs(args pgx.NamedArgs) []any {
	if len(args) == 0 {
		return nil
	}
	return []any{args}
}

func quote(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// quoteQualified escapa "esquema.tabla" parte por parte.
func quoteQualified(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

func columnList(cols []string) string {
	if len(cols) == 0 {
		return "*"
	}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ", ")
}
