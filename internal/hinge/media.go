package hinge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Image descarga una imagen del CDN de medios. path es relativo al host de
// medios (p.ej. "image/upload/<cdnId>.jpg").
func (c *Client) Image(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.mediaURL+"/"+strings.TrimLeft(path, "/"), nil)
	if err != nil {
		return nil, fmt.Errorf("create media request: %w", err)
	}
	// Accept-Encoding queda en manos del transport: negocia gzip y
	// descomprime solo.
	req.Header.Set("User-Agent", "Hinge/11668 CFNetwork/3860.400.22 Darwin/25.3.0")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &APIError{Kind: KindTransient, Endpoint: path, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &APIError{Kind: kindForStatus(resp.StatusCode), StatusCode: resp.StatusCode, Endpoint: path, Message: "media fetch failed"}
	}
	return io.ReadAll(resp.Body)
}

// ProcessedImagePath arma el path de una imagen recortada/redimensionada
// con la sintaxis de transformación del CDN.
func ProcessedImagePath(cdnID string, x, y, w, h float64, outputWidth int) string {
	return fmt.Sprintf("image/upload/x_%.2f,y_%.2f,w_%.2f,h_%.2f,c_crop/w_%d,q_auto/f_webp/%s",
		x, y, w, h, outputWidth, cdnID)
}
