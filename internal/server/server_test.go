package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"productvec/internal/config"
)

// fixturePNG encodes a synthetic product photo: dark body, light round
// control and buttons on a white background.
func fixturePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 320, 480))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for y := 65; y <= 414; y++ {
		for x := 60; x <= 259; x++ {
			img.Pix[img.PixOffset(x, y)] = 60
		}
	}
	disc := func(cx, cy, r int, v uint8) {
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
					img.Pix[img.PixOffset(x, y)] = v
				}
			}
		}
	}
	disc(160, 200, 28, 200)
	disc(110, 300, 18, 200)
	disc(210, 300, 18, 200)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	return New(config.Default(), dir), dir
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestUpload_And_SVG(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	body, ctype := multipartBody(t, "file", "remote.png", fixturePNG(t))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}
	var up struct {
		Success bool   `json:"success"`
		Path    string `json:"path"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &up); err != nil || !up.Success {
		t.Fatalf("upload response %s: %v", rec.Body.String(), err)
	}
	if _, err := os.Stat(up.Path); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{"path": up.Path})
	req = httptest.NewRequest(http.MethodPost, "/api/svg", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("svg status = %d: %s", rec.Code, rec.Body.String())
	}
	var sv struct {
		Success bool   `json:"success"`
		SVG     string `json:"svg"`
		Debug   struct {
			Regions   int  `json:"regions"`
			BodyFound bool `json:"body_found"`
		} `json:"debug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sv); err != nil || !sv.Success {
		t.Fatalf("svg response: %v", err)
	}
	if !strings.Contains(sv.SVG, "<svg") || !strings.Contains(sv.SVG, "<circle") {
		t.Errorf("svg output missing elements:\n%s", sv.SVG)
	}
	if !sv.Debug.BodyFound || sv.Debug.Regions < 4 {
		t.Errorf("debug = %+v", sv.Debug)
	}
}

func TestUpload_RejectsExtension(t *testing.T) {
	srv, _ := newTestServer(t)

	body, ctype := multipartBody(t, "file", "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestOutline(t *testing.T) {
	srv, dir := newTestServer(t)
	path := filepath.Join(dir, "remote.png")
	if err := os.WriteFile(path, fixturePNG(t), 0o644); err != nil {
		t.Fatal(err)
	}

	payload, _ := json.Marshal(map[string]string{"path": path})
	req := httptest.NewRequest(http.MethodPost, "/api/outline", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Success bool `json:"success"`
		Result  struct {
			BodyID  int `json:"body_id"`
			Regions []struct {
				Role string `json:"role"`
			} `json:"regions"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || !out.Success {
		t.Fatalf("outline response: %v\n%s", err, rec.Body.String())
	}
	if out.Result.BodyID < 0 || len(out.Result.Regions) < 4 {
		t.Errorf("result = %+v", out.Result)
	}
	roles := map[string]int{}
	for _, r := range out.Result.Regions {
		roles[r.Role]++
	}
	if roles["body"] != 1 || roles["circle_control"] != 1 {
		t.Errorf("roles = %v", roles)
	}
}

func TestLoadRequest_PathEscape(t *testing.T) {
	srv, _ := newTestServer(t)

	payload, _ := json.Marshal(map[string]string{"path": "/etc/passwd"})
	req := httptest.NewRequest(http.MethodPost, "/api/svg", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSVG_MissingImage(t *testing.T) {
	srv, dir := newTestServer(t)

	payload, _ := json.Marshal(map[string]string{"path": filepath.Join(dir, "nope.png")})
	req := httptest.NewRequest(http.MethodPost, "/api/svg", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSVG_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/svg", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
