package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"hinge-bot/internal/domain"
)

type imageClient interface {
	Image(ctx context.Context, path string) ([]byte, error)
}

// DownloadProfileImages baja las fotos de los perfiles a outDir, una
// carpeta por sujeto. Fotos individuales que fallan se loguean y se sigue;
// devuelve cuántas se escribieron.
func DownloadProfileImages(ctx context.Context, client imageClient, profiles []domain.SavedProfile, outDir string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	downloaded := 0
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return downloaded, err
		}
		if len(p.Photos) == 0 {
			continue
		}
		userDir := filepath.Join(outDir, p.SubjectID)
		if err := os.MkdirAll(userDir, 0o755); err != nil {
			return downloaded, fmt.Errorf("create user dir: %w", err)
		}

		for idx, photo := range p.Photos {
			if photo.CdnID == "" {
				continue
			}
			ext := filepath.Ext(photo.URL)
			if ext == "" {
				ext = ".jpg"
			}
			dest := filepath.Join(userDir, fmt.Sprintf("photo_%d%s", idx, ext))
			if _, err := os.Stat(dest); err == nil {
				continue // ya descargada
			}

			data, err := client.Image(ctx, "image/upload/"+photo.CdnID+ext)
			if err != nil {
				if ctx.Err() != nil {
					return downloaded, ctx.Err()
				}
				logger.Warn("image download failed",
					zap.String("subject_id", p.SubjectID),
					zap.String("cdn_id", photo.CdnID),
					zap.Error(err),
				)
				continue
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return downloaded, fmt.Errorf("write image %s: %w", strings.TrimPrefix(dest, outDir+"/"), err)
			}
			downloaded++
		}
	}
	return downloaded, nil
}
