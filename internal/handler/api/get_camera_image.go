package api

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/atxtraffic/camera-proxy-go/internal/port"
	"github.com/atxtraffic/camera-proxy-go/internal/usecase/camera"
)

const tokenKey = "x-camera"

// GetCameraImageHandler serves one proxied camera frame. An unverifiable
// token never leaks which check failed: the client gets the fallback image
// with a 200, exactly as if the camera existed but had nothing to show.
func GetCameraImageHandler(verifier port.TokenVerifier, svc port.ImageGetter, fallbackPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := verifier.Verify(tokenFromRequest(r))
		if err != nil {
			log.Printf("⚠️  Token rejected: %v", err)
			serveFallback(w, fallbackPath)
			return
		}

		out, err := svc.GetImage(r.Context(), port.GetImageInput{
			CameraID: claims.CameraID,
			NoCache:  claims.NoCache,
		})
		if err != nil {
			if errors.Is(err, camera.ErrOriginFetch) {
				WriteError(w, http.StatusBadGateway, "Camera feed is unavailable", err)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get camera image", err)
			return
		}

		w.Header().Set("Content-Type", out.ContentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(out.Body); err != nil {
			log.Printf("❌  Failed to write image body for camera #%s: %v", claims.CameraID, err)
			return
		}
		log.Printf("✅  Successfully served image for camera #%s (cached: %t)", claims.CameraID, out.FromCache)
	}
}

// tokenFromRequest looks for the capability token in the x-camera header
// first, then in the x-camera query parameter.
func tokenFromRequest(r *http.Request) string {
	if t := r.Header.Get(tokenKey); t != "" {
		return t
	}
	return r.URL.Query().Get(tokenKey)
}

// serveFallback answers an unauthenticated request with the local fallback
// image. Auth failures stay a 200; only a missing asset is a server error.
func serveFallback(w http.ResponseWriter, fallbackPath string) {
	data, err := os.ReadFile(fallbackPath)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Could not read fallback image", err)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌  Failed to write fallback image: %v", err)
	}
}
