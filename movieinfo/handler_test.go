package movieinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/kafka"
	"github.com/kbukum/fluxkit/sse"
)

func newTestRouter(t *testing.T, opts ...HandlerOption) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	r := gin.New()
	NewHandler(svc, opts...).Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apperrors.ErrorBody {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rr.Body.String(), err)
	}
	return resp.Error
}

func TestHandler_GetAll(t *testing.T) {
	r := newTestRouter(t)
	rr := do(r, http.MethodGet, BasePath, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var got []MovieInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestHandler_GetAllByYear(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		query  string
		status int
		count  int
	}{
		{"?year=2005", http.StatusOK, 1},
		{"?year=1999", http.StatusOK, 0},
		{"?year=abc", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := do(r, http.MethodGet, BasePath+tt.query, "")
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			var got []MovieInfo
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode %q: %v", rr.Body.String(), err)
			}
			if len(got) != tt.count {
				t.Errorf("len = %d, want %d", len(got), tt.count)
			}
		})
	}
}

func TestHandler_GetAllAsEvents(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, BasePath, http.NoBody)
	req.Header.Set("Accept", sse.ContentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if ct := rr.Header().Get("Content-Type"); ct != sse.ContentType {
		t.Fatalf("Content-Type = %q", ct)
	}
	if n := strings.Count(rr.Body.String(), "data: "); n != 3 {
		t.Errorf("frames = %d, want 3: %q", n, rr.Body.String())
	}
}

func TestHandler_GetByID(t *testing.T) {
	r := newTestRouter(t)

	rr := do(r, http.MethodGet, BasePath+"/abc", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var m MovieInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Name != "Dark Knight Rises" {
		t.Errorf("name = %q", m.Name)
	}

	rr = do(r, http.MethodGet, BasePath+"/def", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Code != apperrors.ErrCodeNotFound {
		t.Errorf("code = %s", body.Code)
	}
}

func TestHandler_Add(t *testing.T) {
	r := newTestRouter(t)
	body := `{"name":"Batman Begins1","year":2005,"cast":["Christian Bale","Michael Cane"],"releaseDate":"2005-06-15"}`

	rr := do(r, http.MethodPost, BasePath, body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var m MovieInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.ID == "" || m.Name != "Batman Begins1" {
		t.Errorf("created = %+v", m)
	}

	if rr := do(r, http.MethodGet, BasePath+"/"+m.ID, ""); rr.Code != http.StatusOK {
		t.Errorf("created movie not readable: %d", rr.Code)
	}
}

func TestHandler_AddValidation(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"missing fields",
			`{"name":"","year":-2005,"cast":[]}`,
			"movieInfo.cast must be present,movieInfo.name must be present,movieInfo.year must be present and positive",
		},
		{
			"blank cast member",
			`{"name":"Batman Begins","year":2005,"cast":[""]}`,
			"movieInfo.cast must be present",
		},
		{
			"bad release date",
			`{"name":"Batman Begins","year":2005,"cast":["Christian Bale"],"releaseDate":"15/06/2005"}`,
			"movieInfo.releaseDate must be a yyyy-mm-dd date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(r, http.MethodPost, BasePath, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rr.Code)
			}
			body := decodeError(t, rr)
			if body.Code != apperrors.ErrCodeInvalidInput {
				t.Errorf("code = %s", body.Code)
			}
			if body.Message != tt.want {
				t.Errorf("message = %q, want %q", body.Message, tt.want)
			}
		})
	}

	rr := do(r, http.MethodPost, BasePath, `{"name":`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d", rr.Code)
	}
}

func TestHandler_Update(t *testing.T) {
	r := newTestRouter(t)
	body := `{"name":"Dark Knight Rises1","year":2012,"cast":["Christian Bale","Tom Hardy"],"releaseDate":"2012-07-20"}`

	rr := do(r, http.MethodPut, BasePath+"/abc", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var m MovieInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.ID != "abc" || m.Name != "Dark Knight Rises1" {
		t.Errorf("updated = %+v", m)
	}

	rr = do(r, http.MethodPut, BasePath+"/def", body)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("unknown id body = %q, want empty", rr.Body.String())
	}
}

func TestHandler_Delete(t *testing.T) {
	r := newTestRouter(t)

	if rr := do(r, http.MethodDelete, BasePath+"/abc", ""); rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr := do(r, http.MethodGet, BasePath+"/abc", ""); rr.Code != http.StatusNotFound {
		t.Errorf("deleted movie still readable: %d", rr.Code)
	}
	if rr := do(r, http.MethodDelete, BasePath+"/abc", ""); rr.Code != http.StatusNoContent {
		t.Errorf("second delete status = %d", rr.Code)
	}
}

func TestHandler_EventsRoute(t *testing.T) {
	if rr := do(newTestRouter(t), http.MethodGet, BasePath+"/events", ""); rr.Code != http.StatusNotFound {
		t.Errorf("events without a source: status = %d", rr.Code)
	}

	raw, err := kafka.NewEvent("moviesinfo", EventCreated, "abc", MovieInfo{ID: "abc", Name: "Dark Knight Rises", Year: 2012})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	r := newTestRouter(t, WithEvents(EventsFrom(flux.Just(raw))))
	rr := do(r, http.MethodGet, BasePath+"/events", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	got := rr.Body.String()
	if !strings.Contains(got, "event: movieinfo\n") || !strings.Contains(got, `"movieInfoId":"abc"`) {
		t.Errorf("body = %q", got)
	}
}
