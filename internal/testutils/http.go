package testutils

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
)

// TestServer is a browser-like client for a handler: it keeps cookies
// between requests and does not follow redirects.
type TestServer struct {
	*httptest.Server
	Client *http.Client
	t      *testing.T
}

func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	t.Helper()
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &TestServer{
		Server: server,
		Client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		t: t,
	}
}

func (ts *TestServer) GET(path string) *http.Response {
	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(ts.t, err)
	return resp
}

func (ts *TestServer) PostForm(path string, values url.Values) *http.Response {
	resp, err := ts.Client.PostForm(ts.URL+path, values)
	require.NoError(ts.t, err)
	return resp
}

// Do sends req after resolving its path against the server.
func (ts *TestServer) Do(req *http.Request) *http.Response {
	u, err := url.Parse(ts.URL + req.URL.Path)
	require.NoError(ts.t, err)
	req.URL = u
	req.Host = u.Host
	resp, err := ts.Client.Do(req)
	require.NoError(ts.t, err)
	return resp
}

// Login signs in with the given credentials and returns the response.
func (ts *TestServer) Login(username, password string) *http.Response {
	return ts.PostForm("/login", url.Values{
		"username": {username},
		"password": {password},
	})
}

// ReadBody reads and closes the response body.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// PageText returns the visible text of an HTML page with whitespace
// collapsed. Script and style contents are skipped.
func PageText(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	doc, err := html.Parse(resp.Body)
	require.NoError(t, err)

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "head") {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, strings.Join(strings.Fields(s), " "))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(parts, " ")
}

// FindAttr returns the value of attr on the first element with the given id.
func FindAttr(t *testing.T, body, id, attr string) (string, bool) {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id {
					found = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if found == nil {
		return "", false
	}
	for _, a := range found.Attr {
		if a.Key == attr {
			return a.Val, true
		}
	}
	return "", false
}

// ElementText returns the raw text content of the element with the given id.
func ElementText(t *testing.T, body, id string) string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	var b strings.Builder
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id {
					collect(n)
					return true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
	return b.String()
}
