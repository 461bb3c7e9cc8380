package server

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"productvec/internal/palette"
	"productvec/internal/pipeline"
	"productvec/internal/svgout"
)

// allowedExt is the upload extension whitelist.
var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// handleUpload accepts a multipart "file" field, checks the extension
// whitelist, and stores the file under a timestamped name so repeated
// uploads of the same photo never collide.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExt[ext] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file type %q not allowed", ext))
		return
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	path := filepath.Join(s.uploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		log.Printf("upload: create %s: %v", path, err)
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("upload: write %s: %v", path, err)
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Success: true, Filename: name, Path: path})
}

// analyzeRequest names a previously uploaded image and the processing
// options shared by the svg and outline endpoints.
type analyzeRequest struct {
	Path string `json:"path"`

	// CropToBody crops to the detected main object before analysis.
	CropToBody bool `json:"crop_to_body"`
}

type svgResponse struct {
	Success bool     `json:"success"`
	SVG     string   `json:"svg"`
	Debug   svgDebug `json:"debug"`
}

type svgDebug struct {
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Regions   int  `json:"regions"`
	BodyFound bool `json:"body_found"`
	Cropped   bool `json:"cropped"`
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	req, img, ok := s.loadRequest(w, r)
	if !ok {
		return
	}

	img, cropped := s.maybeCrop(img, req)
	res, err := pipeline.Detect(r.Context(), img, s.cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := svgout.Options{}
	if res.BodyID >= 0 {
		body := &res.Regions[res.BodyID]
		opts.BodyGradient = palette.New(img).GradientStops(body.Bounds, 4)
	}
	doc := svgout.Generate(res.Width, res.Height, res.Regions, opts)

	writeJSON(w, http.StatusOK, svgResponse{
		Success: true,
		SVG:     doc,
		Debug: svgDebug{
			Width:     res.Width,
			Height:    res.Height,
			Regions:   len(res.Regions),
			BodyFound: res.BodyID >= 0,
			Cropped:   cropped,
		},
	})
}

type outlineResponse struct {
	Success bool             `json:"success"`
	Result  *pipeline.Result `json:"result"`
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	req, img, ok := s.loadRequest(w, r)
	if !ok {
		return
	}

	img, _ = s.maybeCrop(img, req)
	res, err := pipeline.Detect(r.Context(), img, s.cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outlineResponse{Success: true, Result: res})
}

// loadRequest decodes the JSON body and loads the named image through the
// cache. The path must point inside the upload directory.
func (s *Server) loadRequest(w http.ResponseWriter, r *http.Request) (analyzeRequest, image.Image, bool) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, nil, false
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return req, nil, false
	}
	clean := filepath.Clean(req.Path)
	dir, err := filepath.Abs(s.uploadDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve upload directory")
		return req, nil, false
	}
	abs, err := filepath.Abs(clean)
	if err != nil || !strings.HasPrefix(abs, dir+string(filepath.Separator)) {
		writeError(w, http.StatusBadRequest, "path outside upload directory")
		return req, nil, false
	}

	img, err := s.cache.Load(clean)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("failed to load image: %v", err))
		return req, nil, false
	}
	return req, img, true
}

// maybeCrop narrows the frame to the main object when requested. A photo
// with no detectable main object falls back to the full frame; that is a
// degraded result, not an error.
func (s *Server) maybeCrop(img image.Image, req analyzeRequest) (image.Image, bool) {
	if !req.CropToBody {
		return img, false
	}
	body, err := pipeline.DetectMainObject(img, s.cfg)
	if err != nil {
		log.Printf("main object detection failed, using full frame: %v", err)
		return img, false
	}
	cropped, _, err := pipeline.CropToBody(img, body, s.cfg)
	if err != nil {
		log.Printf("crop failed, using full frame: %v", err)
		return img, false
	}
	return cropped, true
}
