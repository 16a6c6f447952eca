package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/depcatalog-api/internal/application/catalog"
	"github.com/jhoicas/depcatalog-api/internal/application/dto"
	"github.com/jhoicas/depcatalog-api/internal/domain"
)

// PackageHandler catálogo de paquetes de la empresa del token.
type PackageHandler struct {
	importUC *catalog.ImportUseCase
	queryUC  *catalog.QueryUseCase
	maxBytes int64
}

// NewPackageHandler construye el handler. maxBytes acota la lectura del archivo subido (0 = sin límite).
func NewPackageHandler(importUC *catalog.ImportUseCase, queryUC *catalog.QueryUseCase, maxBytes int64) *PackageHandler {
	return &PackageHandler{importUC: importUC, queryUC: queryUC, maxBytes: maxBytes}
}

// List godoc
// @Summary      Listar paquetes del catálogo
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Subcadena del nombre"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.PackageListResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/packages [get]
func (h *PackageHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultPageLimit),
		Offset: c.QueryInt("offset", 0),
		Search: c.Query("search"),
	}
	out, err := h.queryUC.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar paquetes por nombre
// @Description  Cada nombre distinto termina en imported, skipped (ya existía) o invalid.
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ImportPackagesRequest  true  "names"
// @Success      200   {object}  dto.ImportPackagesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/packages/import [post]
func (h *PackageHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportPackagesRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.importUC.ImportNames(c.UserContext(), GetCompanyID(c), GetUserID(c), in.Names)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportLockfile godoc
// @Summary      Importar paquetes desde un lockfile
// @Description  Acepta multipart (campo file) o JSON {filename, content}. El dialecto se detecta por nombre de archivo.
// @Tags         packages
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  false  "package-lock.json, yarn.lock, pnpm-lock.yaml o package.json"
// @Success      200   {object}  dto.ImportLockfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/packages/import/lockfile [post]
func (h *PackageHandler) ImportLockfile(c *fiber.Ctx) error {
	filename, content, err := h.readLockfile(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.importUC.ImportLockfile(c.UserContext(), GetCompanyID(c), GetUserID(c), content, filename)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *PackageHandler) readLockfile(c *fiber.Ctx) (string, []byte, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("%w: campo file requerido", domain.ErrInvalidInput)
		}
		if h.maxBytes > 0 && fh.Size > h.maxBytes {
			return "", nil, fmt.Errorf("%w: el lockfile supera %d bytes", domain.ErrInvalidInput, h.maxBytes)
		}
		f, err := fh.Open()
		if err != nil {
			return "", nil, fmt.Errorf("abrir archivo: %w", err)
		}
		defer f.Close()
		var r io.Reader = f
		if h.maxBytes > 0 {
			r = io.LimitReader(f, h.maxBytes+1)
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return "", nil, fmt.Errorf("leer archivo: %w", err)
		}
		return fh.Filename, content, nil
	}

	var in dto.ImportLockfileRequest
	if err := c.BodyParser(&in); err != nil {
		return "", nil, fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Filename) == "" {
		return "", nil, fmt.Errorf("%w: filename es requerido", domain.ErrInvalidInput)
	}
	return in.Filename, []byte(in.Content), nil
}
