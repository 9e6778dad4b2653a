package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr       string
	GinMode       string
	SuppliersPath string
	SuppliersDSN  string
	CORSOrigins   string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	suppliersPath := strings.TrimSpace(os.Getenv("SUPPLIERS_PATH"))
	if suppliersPath == "" {
		suppliersPath = "config/suppliers.yaml"
	}

	return Env{
		AppAddr:       appAddr,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		SuppliersPath: suppliersPath,
		SuppliersDSN:  strings.TrimSpace(os.Getenv("SUPPLIERS_DSN")),
		CORSOrigins:   strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}
