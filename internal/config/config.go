package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Remote content store
	APIBaseURL string
	APIToken   string

	// SFTP report drop
	SFTPHost      string
	SFTPPort      int
	SFTPUser      string
	SFTPPass      string
	SFTPRemoteDir string
}

func Load() Config {
	return Config{
		APIBaseURL: getenv("EDUSTORE_API_URL", "http://localhost:5000"),
		APIToken:   os.Getenv("EDUSTORE_API_TOKEN"),

		SFTPHost:      os.Getenv("SFTP_HOST"),
		SFTPPort:      getenvInt("SFTP_PORT", 22),
		SFTPUser:      os.Getenv("SFTP_USER"),
		SFTPPass:      os.Getenv("SFTP_PASS"),
		SFTPRemoteDir: getenv("SFTP_REMOTE_DIR", "/reports"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
