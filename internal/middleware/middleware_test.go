package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-registry/internal/adapters/csrf/hmactoken"
	"cat-registry/internal/platform/flash"
	"cat-registry/internal/platform/logger"
)

func TestSession_IssuesCookieWhenMissing(t *testing.T) {
	var got string
	h := Session(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/cats", nil))

	_, err := uuid.Parse(got)
	require.NoError(t, err)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, got, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSession_ReusesValidCookie(t *testing.T) {
	id := uuid.NewString()
	var got string
	h := Session(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cats", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, id, got)
	assert.Empty(t, rr.Result().Cookies())
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	var got string
	h := Session(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cats", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEqual(t, "../../etc", got)
}

func TestMethodOverride_RewritesFormPost(t *testing.T) {
	var method string
	h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))

	for _, m := range []string{"patch", "PUT", "delete"} {
		req := formRequest(http.MethodPost, "/cats/1", url.Values{MethodOverrideField: {m}})
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, strings.ToUpper(m), method)
	}
}

func TestMethodOverride_IgnoresUnsupportedAndNonForm(t *testing.T) {
	var method string
	h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))

	h.ServeHTTP(httptest.NewRecorder(), formRequest(http.MethodPost, "/cats", url.Values{MethodOverrideField: {"GET"}}))
	assert.Equal(t, http.MethodPost, method)

	req := httptest.NewRequest(http.MethodPost, "/cats?_method=DELETE", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodPost, method)
}

func TestCSRF_RejectsMutationWithoutToken(t *testing.T) {
	h, _ := csrfChain(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, withSession(formRequest(http.MethodPost, "/cats", url.Values{"cat[name]": {"Tom"}}), "11111111-1111-1111-1111-111111111111"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCSRF_AcceptsFormFieldAndHeader(t *testing.T) {
	h, tokens := csrfChain(t)
	sess := "11111111-1111-1111-1111-111111111111"

	tok, err := tokens.Issue(sess)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, withSession(formRequest(http.MethodPost, "/cats", url.Values{CSRFField: {tok}}), sess))
	assert.Equal(t, http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/cats/1", nil)
	req.Header.Set(CSRFHeader, tok)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, withSession(req, sess))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCSRF_RejectsTokenFromAnotherSession(t *testing.T) {
	h, tokens := csrfChain(t)

	tok, err := tokens.Issue("22222222-2222-2222-2222-222222222222")
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, withSession(formRequest(http.MethodPost, "/cats", url.Values{CSRFField: {tok}}), "11111111-1111-1111-1111-111111111111"))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCSRF_SafeMethodGetsFreshToken(t *testing.T) {
	tokens, err := hmactoken.New("")
	require.NoError(t, err)
	sess := "11111111-1111-1111-1111-111111111111"

	var tok string
	h := CSRF(tokens, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok = CSRFToken(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), withSession(httptest.NewRequest(http.MethodGet, "/cats/new", nil), sess))

	require.NotEmpty(t, tok)
	assert.NoError(t, tokens.Verify(sess, tok))
}

func TestFlash_SurvivesExactlyOneRequest(t *testing.T) {
	store := flash.NewMemoryStore(time.Minute)
	sess := "11111111-1111-1111-1111-111111111111"

	var seen string
	h := Flash(store, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f := flash.FromContext(r.Context())
		seen = f.First(flash.SlotMessage)
		if r.URL.Path == "/write" {
			f.Set(flash.SlotMessage, "You deleted a cat!")
			http.Redirect(w, r, "/cats", http.StatusSeeOther)
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), withSession(httptest.NewRequest(http.MethodPost, "/write", nil), sess))
	assert.Empty(t, seen)

	h.ServeHTTP(httptest.NewRecorder(), withSession(httptest.NewRequest(http.MethodGet, "/cats", nil), sess))
	assert.Equal(t, "You deleted a cat!", seen)

	h.ServeHTTP(httptest.NewRecorder(), withSession(httptest.NewRequest(http.MethodGet, "/cats", nil), sess))
	assert.Empty(t, seen)
}

func TestFlash_SavedBeforeHeadersAreSent(t *testing.T) {
	store := flash.NewMemoryStore(time.Minute)
	sess := "11111111-1111-1111-1111-111111111111"

	h := Flash(store, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flash.FromContext(r.Context()).Set(flash.SlotMessage, "saved")
		w.WriteHeader(http.StatusSeeOther)

		// Ya persistido aunque el handler no terminó.
		v, err := store.Take(context.Background(), sess)
		require.NoError(t, err)
		assert.Equal(t, []string{"saved"}, v[flash.SlotMessage])
	}))

	h.ServeHTTP(httptest.NewRecorder(), withSession(httptest.NewRequest(http.MethodPost, "/x", nil), sess))
}

func csrfChain(t *testing.T) (http.Handler, *hmactoken.TokenService) {
	t.Helper()
	tokens, err := hmactoken.New("")
	require.NoError(t, err)

	h := MethodOverride(CSRF(tokens, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	return h, tokens
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withSession(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionKey, id))
}
