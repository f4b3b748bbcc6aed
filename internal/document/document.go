// Package document renders deal summaries and stores the result.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"diamond-exchange/internal/models"
)

// InvoiceFolder is the storage folder that receives deal summaries
const InvoiceFolder = "deal-summaries"

// Document is rendered output together with the file extension it should be
// stored under
type Document struct {
	Data        []byte
	Extension   string
	ContentType string
}

// Renderer turns an HTML page into a stored document format
type Renderer interface {
	Render(ctx context.Context, html []byte) (Document, error)
}

// ObjectStorage persists a document and returns the URL it is served from
type ObjectStorage interface {
	Upload(ctx context.Context, data []byte, folder, name string) (string, error)
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Deal {{.Deal.DealID}}</title></head>
<body>
<h1>Deal summary</h1>
<table>
<tr><th>Deal</th><td>{{.Deal.DealID}}</td></tr>
<tr><th>Status</th><td>{{.Deal.Status}}</td></tr>
<tr><th>Buyer</th><td>{{.Deal.BuyerID}}</td></tr>
<tr><th>Seller</th><td>{{.Deal.SellerID}}</td></tr>
<tr><th>Amount</th><td>{{.Deal.AgreedAmount.StringFixed 2}} {{.Deal.Currency}}</td></tr>
<tr><th>Created</th><td>{{.Deal.CreatedAt.Format "2006-01-02 15:04 MST"}}</td></tr>
</table>
{{with .Item}}
<h2>{{.Title}}</h2>
<table>
<tr><th>Barcode</th><td>{{.Barcode}}</td></tr>
<tr><th>Shape</th><td>{{.Shape}}</td></tr>
<tr><th>Carat</th><td>{{.Carat}}</td></tr>
<tr><th>Color</th><td>{{.Color}}</td></tr>
<tr><th>Clarity</th><td>{{.Clarity}}</td></tr>
{{if .Lab}}<tr><th>Lab</th><td>{{.Lab}}</td></tr>{{end}}
</table>
{{end}}
<h2>History</h2>
<ol>
{{range .Deal.History}}<li>{{.Status}} by {{.ChangedBy}} at {{.ChangedAt.Format "2006-01-02 15:04 MST"}}</li>
{{end}}</ol>
</body>
</html>
`))

// Invoice renders the HTML summary of deal. item may be nil when the deal
// references no inventory.
func Invoice(deal models.Deal, item *models.Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, struct {
		Deal models.Deal
		Item *models.Item
	}{deal, item}); err != nil {
		return nil, fmt.Errorf("document: render invoice %s: %w", deal.DealID, err)
	}
	return buf.Bytes(), nil
}

// HTTPRenderer posts HTML to a rendering service and returns the PDF it answers with
type HTTPRenderer struct {
	endpoint string
	client   *http.Client
}

// NewHTTPRenderer creates a renderer for the service at endpoint
func NewHTTPRenderer(endpoint string, timeout time.Duration) *HTTPRenderer {
	return &HTTPRenderer{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

func (r *HTTPRenderer) Render(ctx context.Context, html []byte) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(html))
	if err != nil {
		return Document{}, fmt.Errorf("document: build render request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	req.Header.Set("Accept", "application/pdf")

	resp, err := r.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("document: render request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("document: read rendered document: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("document: renderer answered %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(body) == 0 {
		return Document{}, errors.New("document: renderer returned an empty document")
	}
	return Document{Data: body, Extension: ".pdf", ContentType: "application/pdf"}, nil
}

// HTMLRenderer stores the page as-is. Used when no rendering service is configured.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(_ context.Context, html []byte) (Document, error) {
	return Document{Data: html, Extension: ".html", ContentType: "text/html"}, nil
}

// LocalStorage writes objects below a directory and serves them from baseURL
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates a storage rooted at dir
func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Upload(ctx context.Context, data []byte, folder, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || folder != filepath.Base(folder) {
		return "", fmt.Errorf("document: invalid object name %q/%q", folder, name)
	}
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("document: create folder %s: %w", folder, err)
	}
	if err := os.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		return "", fmt.Errorf("document: write %s: %w", name, err)
	}
	if s.baseURL == "" {
		return path.Join("/", folder, url.PathEscape(name)), nil
	}
	return s.baseURL + "/" + folder + "/" + url.PathEscape(name), nil
}
