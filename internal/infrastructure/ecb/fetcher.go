// Package ecb descarga y parsea el feed diario de tasas de referencia del BCE.
package ecb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-posting/internal/application/rates"
)

var _ rates.Fetcher = (*Fetcher)(nil)

// maxBody límite de lectura del feed (el real ronda 2 KB).
const maxBody = 1 << 20

// Fetcher cliente HTTP del feed eurofxref-daily.xml.
type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher construye el cliente con el timeout dado.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{url: url, client: &http.Client{Timeout: timeout}}
}

// FetchDaily descarga y parsea el feed.
func (f *Fetcher) FetchDaily(ctx context.Context) (*rates.DailyRates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("ecb: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ecb: descargar %s: %w", f.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ecb: respuesta %d de %s", resp.StatusCode, f.url)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("ecb: leer respuesta: %w", err)
	}
	return Parse(body)
}

// Parse lee el XML del feed:
//
//	<Cube><Cube time="2024-01-05"><Cube currency="USD" rate="1.0921"/>...</Cube></Cube>
func Parse(xmlBytes []byte) (*rates.DailyRates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("ecb: xml inválido: %w", err)
	}
	day := doc.FindElement("//Cube[@time]")
	if day == nil {
		return nil, fmt.Errorf("ecb: el feed no trae el nodo Cube con fecha")
	}
	date, err := time.Parse("2006-01-02", day.SelectAttrValue("time", ""))
	if err != nil {
		return nil, fmt.Errorf("ecb: fecha inválida: %w", err)
	}
	out := &rates.DailyRates{Date: date, Rates: make(map[string]decimal.Decimal)}
	for _, c := range day.SelectElements("Cube") {
		code := strings.ToUpper(strings.TrimSpace(c.SelectAttrValue("currency", "")))
		raw := c.SelectAttrValue("rate", "")
		if code == "" || raw == "" {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("ecb: tasa inválida para %s: %w", code, err)
		}
		out.Rates[code] = rate
	}
	if len(out.Rates) == 0 {
		return nil, fmt.Errorf("ecb: el feed no trae tasas")
	}
	return out, nil
}
