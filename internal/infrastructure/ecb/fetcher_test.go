package ecb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-posting/internal/infrastructure/ecb"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<gesmes:Sender>
		<gesmes:name>European Central Bank</gesmes:name>
	</gesmes:Sender>
	<Cube>
		<Cube time="2024-01-05">
			<Cube currency="USD" rate="1.0921"/>
			<Cube currency="DKK" rate="7.4568"/>
			<Cube currency="SEK" rate="11.1825"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

// ─── Parse ───────────────────────────────────────────────────────────────────

func TestParse_ReadsDateAndRates(t *testing.T) {
	got, err := ecb.Parse([]byte(feed))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-05", got.Date.Format("2006-01-02"))
	require.Len(t, got.Rates, 3)
	assert.True(t, decimal.RequireFromString("7.4568").Equal(got.Rates["DKK"]))
	assert.True(t, decimal.RequireFromString("1.0921").Equal(got.Rates["USD"]))
}

func TestParse_RejectsFeedWithoutDate(t *testing.T) {
	_, err := ecb.Parse([]byte(`<Envelope><Cube><Cube currency="USD" rate="1.1"/></Cube></Envelope>`))
	require.Error(t, err)
}

func TestParse_RejectsBadRate(t *testing.T) {
	_, err := ecb.Parse([]byte(`<Envelope><Cube><Cube time="2024-01-05"><Cube currency="USD" rate="abc"/></Cube></Cube></Envelope>`))
	require.Error(t, err)
}

func TestParse_RejectsNonFeedContent(t *testing.T) {
	_, err := ecb.Parse([]byte(`no es un feed`))
	require.Error(t, err)
}

// ─── FetchDaily ──────────────────────────────────────────────────────────────

func TestFetchDaily_DownloadsFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	got, err := ecb.NewFetcher(srv.URL, 0).FetchDaily(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Rates, 3)
}

func TestFetchDaily_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := ecb.NewFetcher(srv.URL, 0).FetchDaily(context.Background())
	require.Error(t, err)
}
