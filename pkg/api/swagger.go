package api

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shared-api/pkg/config"
)

// UseSwagger sirve la UI de Swagger con un documento ya generado.
// Devuelve false si está deshabilitado o el archivo no existe.
func UseSwagger(app *fiber.App, cfg config.SwaggerConfig) bool {
	if !cfg.Enabled || cfg.FilePath == "" {
		return false
	}
	// swagger.New entra en pánico si el archivo no existe.
	if _, err := os.Stat(cfg.FilePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.FilePath,
		Path:     cfg.Path,
		Title:    cfg.Title,
	}))
	return true
}
