package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hinge-bot/internal/config"
	"hinge-bot/internal/db"
	"hinge-bot/internal/domain"
	"hinge-bot/internal/hinge"
	"hinge-bot/internal/service"
	"hinge-bot/internal/store"
)

// Corrida de adquisición por línea de comandos: llena el store local hasta
// el target o hasta que el feed se agote. Ctrl-C cancela limpio entre
// requests, nunca a mitad de una.
func main() {
	target := flag.Int("target", 100, "cantidad de perfiles únicos a juntar")
	standouts := flag.Bool("standouts", false, "usar el feed de standouts en vez de recomendaciones")
	activeToday := flag.Bool("active-today", false, "pedir solo perfiles activos hoy")
	newHere := flag.Bool("new-here", false, "pedir solo perfiles nuevos en la app")
	images := flag.Bool("images", false, "descargar las fotos de los perfiles guardados al final")
	imagesDir := flag.String("images-dir", "images", "directorio de salida para las fotos")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := hinge.NewClient(cfg.HingeBaseURL, cfg.MediaBaseURL, hinge.Credentials{
		AuthToken: cfg.BearerToken,
		SessionID: cfg.SessionID,
		UserID:    cfg.UserID,
		DeviceID:  cfg.DeviceID,
		InstallID: cfg.InstallID,
	}, cfg.AppVersion, logger)

	if creds, err := service.InspectToken(cfg.BearerToken); err != nil {
		fmt.Printf("aviso: no se pudo inspeccionar el token: %v\n", err)
	} else if creds.Expired {
		log.Fatalf("el bearer token expiró el %s: capturar credenciales de nuevo", creds.ExpiresAt)
	}

	var profileStore store.ProfileStore = store.NewJSONFileStore(cfg.StorePath)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		profileStore = store.NewPgProfileStore(pool)
	}

	var fetcher hinge.Fetcher = hinge.NewFeedFetcher(client, *activeToday, *newHere, logger)
	if *standouts {
		fetcher = hinge.NewStandoutFetcher(client, logger)
	}

	svc := service.NewAcquisitionService(fetcher, profileStore, logger)
	set := domain.NewProfileSet()

	fmt.Printf("Juntando hasta %d perfiles únicos...\n", *target)
	reason, err := svc.Acquire(ctx, *target, set, func(total, added int) {
		switch added {
		case service.ProgressExhausted:
			fmt.Println("El feed no tiene más material nuevo.")
		case service.ProgressFailed:
			fmt.Println("Corrida cortada por errores.")
		default:
			fmt.Printf("  batch: +%d nuevos (total %d/%d)\n", added, total, *target)
		}
	})
	if err != nil && errors.Is(err, context.Canceled) {
		fmt.Printf("Cancelado: quedaron %d perfiles acumulados.\n", set.Len())
	} else if err != nil {
		fmt.Printf("Terminó con error (%s): %v\n", reason, err)
	} else {
		fmt.Printf("Listo: %d perfiles (razón: %s).\n", set.Len(), reason)
	}

	if *images && set.Len() > 0 {
		records, err := profileStore.List(context.Background())
		if err != nil {
			log.Fatalf("leer store: %v", err)
		}
		fmt.Printf("Descargando fotos a %s/...\n", *imagesDir)
		n, err := service.DownloadProfileImages(context.Background(), client, records, *imagesDir, logger)
		if err != nil {
			log.Fatalf("descargar fotos: %v", err)
		}
		fmt.Printf("Fotos descargadas: %d\n", n)
	}
}
