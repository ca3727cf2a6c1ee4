package bomupload

import (
	"bytes"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"boutique-backend/internal/database"
	"boutique-backend/internal/inventory"

	"github.com/gofiber/fiber/v2"
)

// Handlers wires the upload workflow: upload -> review -> commit.
type Handlers struct {
	sessions  *SessionStore
	catalog   func() inventory.Catalog
	ocr       TextExtractor
	pdfReader TextExtractor
}

func NewHandlers() *Handlers {
	ocr := SimulatedExtractor{Delay: 300 * time.Millisecond}
	return &Handlers{
		sessions:  NewSessionStore(),
		catalog:   func() inventory.Catalog { return inventory.NewGormCatalog(database.DB) },
		ocr:       ocr,
		pdfReader: PDFExtractor{Fallback: ocr},
	}
}

// POST /api/bom/upload (multipart, field "file")
func (h *Handlers) UploadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file: "+err.Error())
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file: "+err.Error())
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

		var rows []ParsedRow
		var source string

		switch ext {
		case ".csv":
			source = "tabular"
			rows, err = DecodeCSV(file)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Could not read CSV file: "+err.Error())
			}
		case ".xls", ".xlsx":
			source = "tabular"
			rows, err = DecodeWorkbook(file)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Could not read spreadsheet: "+err.Error())
			}
		case ".pdf":
			source = "text"
			rows, err = h.extractAndParse(file, h.pdfReader)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Could not read PDF: "+err.Error())
			}
		case ".jpg", ".jpeg", ".png":
			source = "ocr"
			rows, err = h.extractAndParse(file, h.ocr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Could not extract text from image: "+err.Error())
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported file type. Upload CSV, XLS, XLSX, PDF, JPG or PNG.")
		}

		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No inventory rows could be recognized in this file")
		}

		rows, err = MatchRows(rows, h.catalog())
		if err != nil {
			log.Printf("bom upload: matching failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not match rows against the catalog")
		}

		session := h.sessions.Create(fileHeader.Filename, source, rows)
		log.Printf("bom upload: %s -> session %s with %d rows", fileHeader.Filename, session.ID, len(rows))
		return c.Status(fiber.StatusCreated).JSON(session)
	}
}

func (h *Handlers) extractAndParse(file io.Reader, extractor TextExtractor) ([]ParsedRow, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, err
	}
	text, err := extractor.Extract(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return ParseText(text), nil
}

// GET /api/bom/sessions/:id
func (h *Handlers) GetSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := h.sessions.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Upload session not found")
		}
		return c.JSON(session)
	}
}

type UpdateRowRequest struct {
	Name          *string    `json:"name"`
	Quantity      *int       `json:"quantity"`
	UnitCost      *float64   `json:"unit_cost"`
	SKU           *string    `json:"sku"`
	Size          *string    `json:"size"`
	Color         *string    `json:"color"`
	Vendor        *string    `json:"vendor"`
	HSN           *string    `json:"hsn"`
	Action        *RowAction `json:"action"`
	MatchedItemID *uint      `json:"matched_item_id"`
}

// PUT /api/bom/sessions/:id/rows/:index
// Review-step edits: the user can override any field and flip the
// per-row action before commit.
func (h *Handlers) UpdateRowHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := h.sessions.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Upload session not found")
		}

		index, err := strconv.Atoi(c.Params("index"))
		if err != nil || index < 0 || index >= len(session.Rows) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid row index")
		}

		var body UpdateRowRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		row := &session.Rows[index]
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			row.Name = name
		}
		if body.Quantity != nil {
			if *body.Quantity < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Quantity must be at least 1")
			}
			row.Quantity = *body.Quantity
		}
		if body.UnitCost != nil {
			if *body.UnitCost < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Unit cost cannot be negative")
			}
			row.UnitCost = *body.UnitCost
		}
		if body.SKU != nil {
			row.SKU = strings.TrimSpace(*body.SKU)
		}
		if body.Size != nil {
			row.Size = strings.ToUpper(strings.TrimSpace(*body.Size))
		}
		if body.Color != nil {
			row.Color = titleCase(*body.Color)
		}
		if body.Vendor != nil {
			row.Vendor = strings.TrimSpace(*body.Vendor)
		}
		if body.HSN != nil {
			row.HSN = strings.TrimSpace(*body.HSN)
		}
		if body.MatchedItemID != nil {
			row.MatchedItemID = body.MatchedItemID
		}
		if body.Action != nil {
			switch *body.Action {
			case ActionCreate, ActionIgnore:
				row.Action = *body.Action
			case ActionUpdate:
				// update needs a resolved catalog reference
				if row.MatchedItemID == nil {
					return fiber.NewError(fiber.StatusBadRequest, "Cannot mark row as update without a matched item")
				}
				row.Action = ActionUpdate
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Action must be create, update or ignore")
			}
		}

		return c.JSON(row)
	}
}

// POST /api/bom/sessions/:id/commit
func (h *Handlers) CommitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := h.sessions.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Upload session not found")
		}

		result, err := CommitRows(session.Rows, h.catalog())
		if err != nil {
			// Rows already applied stay applied; report once.
			log.Printf("bom commit: session %s failed after %d created / %d updated: %v",
				session.ID, result.Created, result.Updated, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Commit failed partway; some rows may already be applied")
		}

		h.sessions.Delete(session.ID)
		log.Printf("bom commit: session %s done: %d created, %d updated, %d skipped",
			session.ID, result.Created, result.Updated, result.Skipped)
		return c.JSON(result)
	}
}

// DELETE /api/bom/sessions/:id
func (h *Handlers) DeleteSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := h.sessions.Get(c.Params("id")); err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Upload session not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not resolve session")
		}
		h.sessions.Delete(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	}
}
