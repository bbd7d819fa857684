package llm2

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// jpegQualityLadder is tried in order when a recompressed image still
// exceeds the byte budget at a higher quality.
var jpegQualityLadder = []int{95, 85, 75, 60, 40, 20, 10}

// parseDataURL splits a "data:<mime>;base64,<payload>" URL into its mime
// type and decoded payload.
func parseDataURL(dataURL string) (mimeType string, raw []byte, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, newError(ErrInvalidResponse, "data URL missing 'data:' prefix")
	}

	rest := dataURL[len("data:"):]
	commaIdx := strings.Index(rest, ",")
	if commaIdx < 0 {
		return "", nil, newError(ErrInvalidResponse, "data URL missing comma separator")
	}

	meta := rest[:commaIdx]
	payload := rest[commaIdx+1:]

	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, newError(ErrInvalidResponse, "data URL missing ';base64' marker")
	}

	mimeType = meta[:len(meta)-len(";base64")]
	if mimeType == "" {
		return "", nil, newError(ErrInvalidResponse, "data URL has empty mime type")
	}

	raw, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, wrapError(ErrInvalidResponse, "data URL base64 decode", err)
	}
	return mimeType, raw, nil
}

// buildDataURL re-assembles a mime type and raw bytes into a data URL.
func buildDataURL(mimeType string, raw []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// longEdge returns the larger of an image's two dimensions.
func longEdge(img image.Image) int {
	bounds := img.Bounds()
	if bounds.Dy() > bounds.Dx() {
		return bounds.Dy()
	}
	return bounds.Dx()
}

// downscale scales img so its long edge is at most maxLongEdgePx,
// preserving aspect ratio. Bilinear, matching the quality/speed tradeoff
// the rest of the driver pipeline makes for on-the-fly image prep.
func downscale(img image.Image, maxLongEdgePx int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := float64(maxLongEdgePx) / float64(longEdge(img))
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, wrapError(ErrInvalidResponse, "jpeg encode", err)
	}
	return buf.Bytes(), nil
}

// fitImageToLimits takes a data URL containing an image and returns a
// (possibly resized/recompressed) data URL whose long edge is at most
// maxLongEdgePx (0 disables the dimension check) and whose payload is at
// most maxBytes. An image already within both limits is returned unchanged.
// When the raw bytes can't be decoded as an image, the size limit alone is
// enforced since no resize/recompress path is available.
func fitImageToLimits(dataURL string, maxBytes, maxLongEdgePx int) (newDataURL, mime string, data []byte, err error) {
	mime, raw, err := parseDataURL(dataURL)
	if err != nil {
		return "", "", nil, err
	}

	if len(raw) <= maxBytes && maxLongEdgePx <= 0 {
		return dataURL, mime, raw, nil
	}

	img, _, decodeErr := image.Decode(bytes.NewReader(raw))
	if decodeErr != nil {
		if len(raw) <= maxBytes {
			return dataURL, mime, raw, nil
		}
		return "", "", nil, wrapError(ErrInvalidResponse, "image exceeds byte limit and cannot be decoded for resizing", decodeErr)
	}

	needsResize := maxLongEdgePx > 0 && longEdge(img) > maxLongEdgePx
	needsRecompress := len(raw) > maxBytes
	if !needsResize && !needsRecompress {
		return dataURL, mime, raw, nil
	}

	if needsResize {
		img = downscale(img, maxLongEdgePx)
	}

	for _, quality := range jpegQualityLadder {
		encoded, encErr := encodeJPEG(img, quality)
		if encErr != nil {
			return "", "", nil, encErr
		}
		if len(encoded) <= maxBytes {
			return buildDataURL("image/jpeg", encoded), "image/jpeg", encoded, nil
		}
	}

	return "", "", nil, newError(ErrInvalidResponse, "image cannot be reduced below the byte limit even at minimum jpeg quality")
}

func init() {
	// register decoders for image.Decode's format sniffing
	_ = png.Decode
	_ = gif.Decode
	_ = jpeg.Decode
}
