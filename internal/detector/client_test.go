package detector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetect_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"detections": [
				{"label": "car", "score": 0.97, "x_min": 10, "y_min": 20, "x_max": 110, "y_max": 220}
			],
			"sha256": "aabbccddeeff0011"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "beam-token")
	detections, err := c.Detect(context.Background(), "cameras/395/aabbccddeeff0011.jpg")
	if err != nil {
		t.Fatalf("Detect() returned unexpected error: %v", err)
	}
	if gotAuth != "Bearer beam-token" {
		t.Errorf("Authorization = %q; want bearer token", gotAuth)
	}
	if gotBody["key"] != "cameras/395/aabbccddeeff0011.jpg" {
		t.Errorf("request key = %q", gotBody["key"])
	}
	if len(detections) != 1 {
		t.Fatalf("detections = %d; want 1", len(detections))
	}
	d := detections[0]
	if d.Label != "car" || d.Score != 0.97 || d.XMax != 110 {
		t.Errorf("detection fields wrong: %+v", d)
	}
}

func TestDetect_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"detections": [], "sha256": "aabbccddeeff0011"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	detections, err := c.Detect(context.Background(), "cameras/395/aabbccddeeff0011.jpg")
	if err != nil {
		t.Fatalf("Detect() returned unexpected error: %v", err)
	}
	if len(detections) != 0 {
		t.Errorf("detections = %d; want none", len(detections))
	}
}

func TestDetect_EndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Detect(context.Background(), "cameras/395/aabbccddeeff0011.jpg"); err == nil {
		t.Fatal("expected error for a 503 response, got nil")
	}
}

func TestDetect_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Detect(context.Background(), "cameras/395/aabbccddeeff0011.jpg"); err == nil {
		t.Fatal("expected transport error, got nil")
	}
}
