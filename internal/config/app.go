package config

import "os"

const defaultAddr = ":8080"

func Addr() string {
	addr, ok := os.LookupEnv("APP_ADDR")
	if !ok || addr == "" {
		return defaultAddr
	}
	return addr
}
