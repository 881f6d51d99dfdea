package testutils

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"employee-portal/internal/config"

	"github.com/stretchr/testify/require"
)

const (
	TestUsername      = "testuser"
	TestPassword      = "Test123"
	TestSessionSecret = "test-session-secret-0123456789abcdef"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		Port:          "0",
		Username:      TestUsername,
		Password:      TestPassword,
		SessionSecret: []byte(TestSessionSecret),
		SQLitePath:    ":memory:",
		DatabaseName:  "employee-portal-test",
	}
}

// TableRows are upstream rows in the positional shape
// [name, designation, city, id, start date, salary].
var TableRows = [][]interface{}{
	{"Asha Rao", "Manager", "Pune", "5421", "2011/04/25", "$320,800"},
	{"Ravi Kumar", "Accountant", "Mumbai", "8422", "2011/07/25", "$170,750"},
	{"Meera Nair", "", "Atlantis", "1562", "2009/01/12", "$86,000"},
	{"", "Engineer", "", "6224", "2012/03/29", ""},
}

// TableDataPayload wraps rows the way the upstream does.
func TableDataPayload(t *testing.T, rows interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"TABLE_DATA": map[string]interface{}{"data": rows},
	})
	require.NoError(t, err)
	return body
}

// Upstream is a fake table-data endpoint that records the requests it gets.
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     []byte
	requests [][]byte
}

func NewUpstream(t *testing.T, status int, body []byte) *Upstream {
	t.Helper()
	u := &Upstream{status: status, body: body}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.requests = append(u.requests, payload)
		status, body := u.status, u.body
		u.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(u.Close)
	return u
}

// Respond changes what the upstream answers from now on.
func (u *Upstream) Respond(status int, body []byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
	u.body = body
}

func (u *Upstream) Requests() [][]byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([][]byte(nil), u.requests...)
}

// PNGDataURL encodes a w x h PNG as a data URL, the way a canvas snapshot
// arrives from the browser.
func PNGDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 236, G: 72, B: 153, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
