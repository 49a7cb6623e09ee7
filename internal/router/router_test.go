package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-registry/internal/router"
)

var tokenRe = regexp.MustCompile(`name="authenticity_token" value="([^"]+)"`)

// browser: cookie jar y sin seguir redirects, para poder mirar el 303.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T) *browser {
	t.Helper()

	h, err := router.NewRouter(router.Options{})
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:    t,
		base: ts.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) get(path string) (int, string, http.Header) {
	b.t.Helper()
	res, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(body), res.Header
}

func (b *browser) postForm(path string, form url.Values) (int, string, http.Header) {
	b.t.Helper()
	res, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(body), res.Header
}

// token abre el form de alta y saca el authenticity_token.
func (b *browser) token() string {
	b.t.Helper()
	st, body, _ := b.get("/cats/new")
	require.Equal(b.t, http.StatusOK, st)
	m := tokenRe.FindStringSubmatch(body)
	require.Len(b.t, m, 2, "token not found in form")
	return m[1]
}

func (b *browser) createCat(name, breed string) string {
	b.t.Helper()
	st, _, h := b.postForm("/cats", url.Values{
		"authenticity_token": {b.token()},
		"cat[name]":          {name},
		"cat[breed]":         {breed},
	})
	require.Equal(b.t, http.StatusSeeOther, st)
	return h.Get("Location")
}

func TestHTML_CreateShowEditDelete(t *testing.T) {
	b := newBrowser(t)

	// 1) Alta válida => redirect al show
	loc := b.createCat("Tom", "Tabby")
	assert.Equal(t, "/cats/1", loc)

	// 2) Show muestra el aviso una sola vez
	st, body, _ := b.get(loc)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "Tom")
	assert.Contains(t, body, "Cat saved!")

	_, body, _ = b.get(loc)
	assert.NotContains(t, body, "Cat saved!")

	// 3) Edit precarga valores
	st, body, _ = b.get("/cats/1/edit")
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, `value="Tabby"`)

	// 4) Update via _method=patch
	st, _, h := b.postForm("/cats/1", url.Values{
		"authenticity_token": {b.token()},
		"_method":            {"patch"},
		"cat[name]":          {"Thomas"},
		"cat[breed]":         {"Tabby"},
	})
	require.Equal(t, http.StatusSeeOther, st)
	assert.Equal(t, "/cats/1", h.Get("Location"))

	_, body, _ = b.get("/cats/1")
	assert.Contains(t, body, "Thomas")

	// 5) Delete => mensaje en la lista y el gato ya no está
	st, _, h = b.postForm("/cats/1", url.Values{
		"authenticity_token": {b.token()},
		"_method":            {"delete"},
	})
	require.Equal(t, http.StatusSeeOther, st)
	assert.Equal(t, "/cats", h.Get("Location"))

	_, body, _ = b.get("/cats")
	assert.Contains(t, body, "You deleted a cat!")
	assert.NotContains(t, body, `href="/cats/1"`)

	// 6) El mensaje no sobrevive a un segundo request
	_, body, _ = b.get("/cats")
	assert.NotContains(t, body, "You deleted a cat!")

	st, _, _ = b.get("/cats/1")
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTML_CreateInvalid_RerendersWithErrors(t *testing.T) {
	b := newBrowser(t)

	st, body, _ := b.postForm("/cats", url.Values{
		"authenticity_token": {b.token()},
		"cat[name]":          {"Tom"},
		"cat[breed]":         {""},
	})
	require.Equal(t, http.StatusUnprocessableEntity, st)
	assert.Contains(t, body, "breed can&#39;t be blank")
	assert.Contains(t, body, `value="Tom"`, "submitted values are kept")

	// Nada persistido, y el error no reaparece
	_, body, _ = b.get("/cats")
	assert.Contains(t, body, "No cats yet.")
	assert.NotContains(t, body, "can&#39;t be blank")
}

func TestHTML_UpdateInvalid_RerendersEdit(t *testing.T) {
	b := newBrowser(t)
	b.createCat("Tom", "Tabby")

	st, body, _ := b.postForm("/cats/1", url.Values{
		"authenticity_token": {b.token()},
		"_method":            {"patch"},
		"cat[name]":          {"  "},
		"cat[breed]":         {"Persian"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, st)
	assert.Contains(t, body, "name can&#39;t be blank")
	assert.Contains(t, body, `action="/cats/1"`)

	_, body, _ = b.get("/cats/1")
	assert.Contains(t, body, "Tom")
	assert.Contains(t, body, "Tabby")
}

func TestHTML_MutationWithoutTokenIsForbidden(t *testing.T) {
	b := newBrowser(t)

	st, _, _ := b.postForm("/cats", url.Values{
		"cat[name]":  {"Tom"},
		"cat[breed]": {"Tabby"},
	})
	assert.Equal(t, http.StatusForbidden, st)

	_, body, _ := b.get("/cats")
	assert.Contains(t, body, "No cats yet.")
}

func TestHTML_TokenIsBoundToSession(t *testing.T) {
	alice := newBrowser(t)
	tok := alice.token()

	// Otra sesión contra el mismo server
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	mallory := &browser{t: t, base: alice.base, client: &http.Client{
		Jar:           jar,
		CheckRedirect: alice.client.CheckRedirect,
	}}

	st, _, _ := mallory.postForm("/cats", url.Values{
		"authenticity_token": {tok},
		"cat[name]":          {"Tom"},
		"cat[breed]":         {"Tabby"},
	})
	assert.Equal(t, http.StatusForbidden, st)
}

func TestHTML_UnknownAndMalformedIDs(t *testing.T) {
	b := newBrowser(t)

	for _, path := range []string{"/cats/99", "/cats/abc", "/cats/99/edit"} {
		st, body, _ := b.get(path)
		assert.Equal(t, http.StatusNotFound, st, path)
		assert.Contains(t, body, "Cat not found", path)
	}

	st, _, _ := b.postForm("/cats/99", url.Values{
		"authenticity_token": {b.token()},
		"_method":            {"delete"},
	})
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTML_RootRedirectsAndHealth(t *testing.T) {
	b := newBrowser(t)

	st, _, h := b.get("/")
	assert.Equal(t, http.StatusFound, st)
	assert.Equal(t, "/cats", h.Get("Location"))

	st, body, _ := b.get("/health")
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", body)
}

func TestHTML_RootRedirectKeepsPendingMessage(t *testing.T) {
	b := newBrowser(t)
	b.createCat("Tom", "Tabby")

	st, _, _ := b.postForm("/cats/1", url.Values{
		"authenticity_token": {b.token()},
		"_method":            {"delete"},
	})
	require.Equal(t, http.StatusSeeOther, st)

	// Pasar por / no consume el aviso
	st, _, h := b.get("/")
	require.Equal(t, http.StatusFound, st)
	assert.Equal(t, "/cats", h.Get("Location"))

	_, body, _ := b.get("/cats")
	assert.Contains(t, body, "You deleted a cat!")
}

func TestAPI_CRUD(t *testing.T) {
	b := newBrowser(t)

	st, body, _ := b.get("/api/csrf")
	require.Equal(t, http.StatusOK, st)
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &tok))
	require.NotEmpty(t, tok.Token)

	// sin token => 403
	st, _ = apiReq(t, b, "POST", "/api/cats", "", map[string]any{"cat": map[string]any{"name": "Tom", "breed": "Tabby"}})
	assert.Equal(t, http.StatusForbidden, st)

	// inválido => 422 con errores
	st, body = apiReq(t, b, "POST", "/api/cats", tok.Token, map[string]any{"cat": map[string]any{"name": "Tom"}})
	require.Equal(t, http.StatusUnprocessableEntity, st)
	assert.JSONEq(t, `{"errors":["breed can't be blank"]}`, body)

	// válido => 201; campos fuera de la allow-list se ignoran, también los de primer nivel
	st, body = apiReq(t, b, "POST", "/api/cats", tok.Token, map[string]any{
		"cat":                map[string]any{"name": "Tom", "breed": "Tabby", "id": 77},
		"authenticity_token": tok.Token,
		"commit":             "Create Cat",
		"n":                  1,
	})
	require.Equal(t, http.StatusCreated, st)
	var created struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Breed string `json:"breed"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Tom", created.Name)

	st, body = apiReq(t, b, "PATCH", "/api/cats/1", tok.Token, map[string]any{"cat": map[string]any{"name": "Thomas", "breed": "Tabby"}})
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, `"name":"Thomas"`)

	st, body = apiReq(t, b, "GET", "/api/cats", "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, `"Thomas"`)

	st, _ = apiReq(t, b, "DELETE", "/api/cats/1", tok.Token, nil)
	assert.Equal(t, http.StatusNoContent, st)

	st, _ = apiReq(t, b, "GET", "/api/cats/1", "", nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, _ = apiReq(t, b, "GET", "/api/cats/x", "", nil)
	assert.Equal(t, http.StatusBadRequest, st)
}

func TestSwaggerDocIsServed(t *testing.T) {
	b := newBrowser(t)

	st, body, _ := b.get("/swagger/doc.json")
	require.Equal(t, http.StatusOK, st)
	assert.True(t, strings.Contains(body, "/api/cats"))

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	for _, method := range []string{"get", "patch", "put", "delete"} {
		assert.Contains(t, doc.Paths["/api/cats/{catID}"], method)
	}
	assert.Contains(t, doc.Paths["/api/cats"], "post")
}

func apiReq(t *testing.T, b *browser, method, path, token string, body any) (int, string) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, b.base+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}

	res, err := b.client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(respBody)
}
