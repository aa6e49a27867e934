package installer

import "github.com/sandevgo/lyla/internal/config"

type InstallState struct {
	Config *config.AppConfig
}

func NewInstallState(cfg *config.AppConfig) *InstallState {
	c := *cfg
	return &InstallState{Config: &c}
}
