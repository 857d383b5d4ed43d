package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env is the deployment configuration read from SHOWTIME_* variables.
// CLI flags override it in cmd/.
type Env struct {
	LicenseURL      string        `env:"SHOWTIME_LICENSE_URL"      envDefault:"http://127.0.0.1:18090"`
	LicensePath     string        `env:"SHOWTIME_LICENSE_PATH"     envDefault:"data/licenses"`
	LicenseMode     string        `env:"SHOWTIME_LICENSE_MODE"     envDefault:"single_use"`
	RefreshInterval time.Duration `env:"SHOWTIME_REFRESH_INTERVAL" envDefault:"16ms"`
	Sequence        string        `env:"SHOWTIME_SEQUENCE"         envDefault:"staged"`

	LicensedAddr string `env:"SHOWTIME_LICENSED_ADDR" envDefault:"127.0.0.1:18090"`
	LicensedDB   string `env:"SHOWTIME_LICENSED_DB"   envDefault:"licenses.db"`
}

// LoadEnv parses and validates the environment, completed by DotEnvFile
// in the working directory when present.
func LoadEnv() (Env, error) {
	return LoadEnvFile(DotEnvFile)
}

// LoadEnvFile is LoadEnv with an explicit dotenv path. Variables already set
// in the process win over the file. A missing file is not an error.
func LoadEnvFile(path string) (Env, error) {
	environ := env.ToMap(os.Environ())
	if path != "" {
		file, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Env{}, fmt.Errorf("%s: %w", ErrDotEnv, err)
		default:
			for k, v := range file {
				if _, set := environ[k]; !set {
					environ[k] = v
				}
			}
		}
	}

	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Env{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot run with. The license mode
// is checked by the license package.
func (e Env) Validate() error {
	switch e.Sequence {
	case SequenceStaged, SequenceSingleShot:
	default:
		return fmt.Errorf("%s: %q", ErrSequenceUnknown, e.Sequence)
	}
	if e.RefreshInterval <= 0 {
		return errors.New(ErrRefreshInterval)
	}
	return nil
}
