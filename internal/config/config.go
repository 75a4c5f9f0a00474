package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Frontend Frontend `koanf:"frontend"`
	SaudeAPI SaudeAPI `koanf:"saudeapi"`
	IBGE     IBGE     `koanf:"ibge"`
	Auth     Auth     `koanf:"auth"`
	Autosave Autosave `koanf:"autosave"`
	Database Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// SaudeAPI configures access to the Ministry of Health financing API
// that publishes the monthly APS payment reports.
type SaudeAPI struct {
	BaseURL        string `koanf:"baseurl"`
	TimeoutSeconds int    `koanf:"timeoutseconds"`
}

// IBGE configures the IBGE localities API used for the municipality catalog.
type IBGE struct {
	BaseURL        string `koanf:"baseurl"`
	TimeoutSeconds int    `koanf:"timeoutseconds"`
}

type Auth struct {
	TokenTTLMinutes int    `koanf:"tokenttlminutes"`
	RefreshTTLHours int    `koanf:"refreshttlhours"`
	BootstrapAdmin  string `koanf:"bootstrapadmin"`
	BootstrapSecret string `koanf:"bootstrapsecret"`
}

func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

func (a Auth) RefreshTTL() time.Duration {
	return time.Duration(a.RefreshTTLHours) * time.Hour
}

type Autosave struct {
	DebounceMs int `koanf:"debouncems"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		SaudeAPI: SaudeAPI{
			BaseURL:        "https://relatorioaps-prd.saude.gov.br/financiamento/pagamento",
			TimeoutSeconds: 30,
		},
		IBGE: IBGE{
			BaseURL:        "https://servicodados.ibge.gov.br/api/v1/localidades",
			TimeoutSeconds: 15,
		},
		Auth: Auth{
			TokenTTLMinutes: 60,
			RefreshTTLHours: 24 * 7,
			BootstrapAdmin:  "admin",
		},
		Autosave: Autosave{
			DebounceMs: 2000,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "papprefeito",
			Pass:   "",
			Name:   "papprefeito",
			Schema: "papprefeito",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "PAPPREFEITO_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PAPPREFEITO_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
