package config

import "os"

func IsDebug() bool {
	return os.Getenv("LYLA_DEBUG") == "1"
}
