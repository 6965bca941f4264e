// seed_notes carga notas de ejemplo desde un CSV (title;body;authorDocument).
//
// Uso: go run ./cmd/seed_notes [-latin1] [ruta/notas.csv]
// Por defecto lee notas.csv del directorio actual. Con -latin1 el archivo se
// decodifica como ISO-8859-1. Las filas inválidas se informan y se omiten.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/shared-api/internal/notes"
	"github.com/jhoicas/shared-api/pkg/config"
	"github.com/jhoicas/shared-api/pkg/document"
	"github.com/jhoicas/shared-api/pkg/domain"
	"github.com/jhoicas/shared-api/pkg/postgres"
	"github.com/jhoicas/shared-api/pkg/text"
	"github.com/jhoicas/shared-api/pkg/validation"
)

func main() {
	latin1 := flag.Bool("latin1", false, "decodificar el CSV como ISO-8859-1")
	flag.Parse()

	csvPath := "notas.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	items, skipped, err := readNotes(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.DB.Enabled() {
		fmt.Fprintln(os.Stderr, "DB no configurada (DATABASE_URL o DB_HOST)")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := notes.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	store, err := notes.NewPostgresStore(pool, postgres.NewUnitOfWork(pool))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := store.AddRange(ctx, items); err != nil {
		fmt.Fprintf(os.Stderr, "Insertar notas: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cargadas %d notas desde %s (%d filas omitidas)\n", len(items), csvPath, skipped)
}

type row struct {
	Title          string `json:"title" validate:"required,max=120"`
	Body           string `json:"body" validate:"max=4000"`
	AuthorDocument string `json:"authorDocument" validate:"cpf"`
}

// readNotes lee las filas separadas por ';'. La primera fila es la cabecera.
func readNotes(in io.Reader) ([]notes.Note, int, error) {
	r := csv.NewReader(in)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	v := validation.New()
	var (
		items   []notes.Note
		skipped int
		line    int
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, err
		}
		line++
		if line == 1 {
			continue
		}

		var rw row
		for i, dst := range []*string{&rw.Title, &rw.Body, &rw.AuthorDocument} {
			if i < len(rec) {
				*dst = strings.TrimSpace(rec[i])
			}
		}
		if err := v.Struct(rw); err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d omitida: %s\n", line, strings.Join(validation.Messages(err), "; "))
			skipped++
			continue
		}

		n := notes.Note{
			Entity: domain.NewEntity(),
			Title:  text.StandardSpaces(rw.Title),
			Body:   rw.Body,
		}
		if rw.AuthorDocument != "" {
			n.AuthorDocument = document.FormatCPF(rw.AuthorDocument)
		}
		items = append(items, n)
	}
	return items, skipped, nil
}
