package common

import (
	"os"
	"testing"
)

func IsTestEnv() bool {
	return testing.Testing()
}

func IsDevelopment() bool {
	return os.Getenv(EnvKeyGoEnv) == "development"
}

func IsProduction() bool {
	return os.Getenv(EnvKeyGoEnv) == "production"
}

func GetEnvOr(key, fallback string) string {
	if val, found := os.LookupEnv(key); found {
		return val
	}
	return fallback
}

func Mapper[T any, R any](items []T, mapFn func(T) R) []R {
	mapped := make([]R, len(items))
	for i := 0; i < len(items); i++ {
		mapped[i] = mapFn(items[i])
	}
	return mapped
}
