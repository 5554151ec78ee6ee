package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"edustore/internal/admin"
	"edustore/internal/catalog"
	"edustore/internal/config"
	"edustore/internal/export"
	"edustore/internal/session"
	"edustore/internal/sftpclient"
)

func main() {
	var (
		outPath    = flag.String("out", "STUDENT-ROSTER.csv", "output csv path")
		withVideos = flag.Bool("videos", false, "also export the video catalog next to the roster")
		uploadSFTP = flag.Bool("sftp", false, "upload the generated CSV via SFTP")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// asegura dir de salida
	if dir := filepath.Dir(*outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	cat := catalog.New(cfg.APIBaseURL, session.StaticToken(cfg.APIToken), logger)
	dir := admin.New(cat, logger)

	users, err := dir.ListUsers(ctx)
	if err != nil {
		log.Fatalf("list users: %v", err)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("create %s: %v", *outPath, err)
	}
	if err := export.WriteStudentRoster(f, users); err != nil {
		f.Close()
		log.Fatalf("write roster: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", *outPath, err)
	}
	logger.Info("roster written", zap.String("path", *outPath), zap.Int("users", len(users)))

	if *withVideos {
		videos, err := dir.ListVideos(ctx)
		if err != nil {
			log.Fatalf("list videos: %v", err)
		}
		vPath := videosPath(*outPath)
		vf, err := os.Create(vPath)
		if err != nil {
			log.Fatalf("create %s: %v", vPath, err)
		}
		if err := export.WriteVideoCatalog(vf, videos); err != nil {
			vf.Close()
			log.Fatalf("write video catalog: %v", err)
		}
		if err := vf.Close(); err != nil {
			log.Fatalf("close %s: %v", vPath, err)
		}
		logger.Info("video catalog written", zap.String("path", vPath), zap.Int("videos", len(videos)))
	}

	if *uploadSFTP {
		sftpCfg := sftpclient.Config{
			Host:      cfg.SFTPHost,
			Port:      cfg.SFTPPort,
			User:      cfg.SFTPUser,
			Pass:      cfg.SFTPPass,
			RemoteDir: cfg.SFTPRemoteDir,
		}
		if err := sftpclient.UploadReport(ctx, sftpCfg, *outPath, filepath.Base(*outPath), logger); err != nil {
			log.Fatalf("sftp upload: %v", err)
		}
	}
}

func videosPath(rosterPath string) string {
	dir := filepath.Dir(rosterPath)
	return filepath.Join(dir, "VIDEO-CATALOG.csv")
}
