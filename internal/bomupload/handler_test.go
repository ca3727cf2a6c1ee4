package bomupload

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boutique-backend/internal/inventory"
	"boutique-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, *inventory.MemoryCatalog) {
	t.Helper()
	catalog := inventory.NewMemoryCatalog()
	h := &Handlers{
		sessions:  NewSessionStore(),
		catalog:   func() inventory.Catalog { return catalog },
		ocr:       SimulatedExtractor{},
		pdfReader: SimulatedExtractor{},
	}

	app := fiber.New()
	app.Post("/bom/upload", h.UploadHandler())
	app.Get("/bom/sessions/:id", h.GetSessionHandler())
	app.Put("/bom/sessions/:id/rows/:index", h.UpdateRowHandler())
	app.Post("/bom/sessions/:id/commit", h.CommitHandler())
	app.Delete("/bom/sessions/:id", h.DeleteSessionHandler())
	return app, catalog
}

func uploadFile(t *testing.T, app *fiber.App, name, content string) Session {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.Copy(part, strings.NewReader(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/bom/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, raw)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session
}

func TestUploadReviewCommitFlow(t *testing.T) {
	app, catalog := newTestApp(t)

	csv := "Item Name,QTY,PRICE\nRed Kurti,12,450\nBlue Jeans,5,850\n"
	session := uploadFile(t, app, "challan.csv", csv)
	if len(session.Rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(session.Rows))
	}

	// Review: drop the second row.
	editBody := strings.NewReader(`{"action":"ignore"}`)
	req := httptest.NewRequest(http.MethodPut, "/bom/sessions/"+session.ID+"/rows/1", editBody)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("row edit failed: err=%v status=%d", err, resp.StatusCode)
	}

	// Commit.
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/bom/sessions/"+session.ID+"/commit", nil), -1)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("commit failed: err=%v status=%d", err, resp.StatusCode)
	}
	var result CommitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Created != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected commit result: %+v", result)
	}

	items, _ := catalog.Items()
	if len(items) != 1 || items[0].Name != "Red Kurti" {
		t.Fatalf("expected only 'Red Kurti' committed, got %+v", items)
	}

	// Session is gone after commit.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/bom/sessions/"+session.ID, nil), -1)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected committed session to be discarded, status=%d", resp.StatusCode)
	}
}

func TestUploadMatchesExistingCatalog(t *testing.T) {
	app, catalog := newTestApp(t)
	seed := models.Item{Name: "Blue Jeans"}
	if err := catalog.CreateItem(&seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	csv := "Item Name,QTY,PRICE\nblue jeans,5,850\n"
	session := uploadFile(t, app, "restock.csv", csv)
	if session.Rows[0].Action != ActionUpdate || session.Rows[0].MatchedItemID == nil {
		t.Fatalf("expected case-insensitive match to update, got %+v", session.Rows[0])
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	app, _ := newTestApp(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("file", "notes.docx")
	part.Write([]byte("whatever"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/bom/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported extension, got %d", resp.StatusCode)
	}
}

func TestImageUploadGoesThroughSimulatedOCR(t *testing.T) {
	app, _ := newTestApp(t)

	session := uploadFile(t, app, "challan.jpg", "binary-image-bytes")
	if session.Source != "ocr" {
		t.Fatalf("expected ocr source, got %q", session.Source)
	}
	if len(session.Rows) != 4 {
		t.Fatalf("expected the sample challan's 4 rows, got %d", len(session.Rows))
	}
}

func TestUpdateToActionUpdateRequiresMatch(t *testing.T) {
	app, _ := newTestApp(t)

	session := uploadFile(t, app, "new.csv", "Item Name,QTY\nWoolen Scarf,2\n")

	editBody := strings.NewReader(`{"action":"update"}`)
	req := httptest.NewRequest(http.MethodPut, "/bom/sessions/"+session.ID+"/rows/0", editBody)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 when forcing update without a match, got %d", resp.StatusCode)
	}
}
