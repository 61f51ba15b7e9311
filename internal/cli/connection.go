package cli

import (
	"time"

	"github.com/vburojevic/osbench/internal/config"
	"github.com/vburojevic/osbench/internal/search"
)

// ConnectionFlags are shared by every command that talks to the cluster
type ConnectionFlags struct {
	Host     string        `help:"OpenSearch host" default:"${config_host}"`
	Port     int           `help:"OpenSearch port" default:"${config_port}"`
	User     string        `help:"OpenSearch username" default:"${config_user}"`
	Password string        `help:"OpenSearch password (prefer OSBENCH_PASSWORD or the config file)"`
	SSL      bool          `help:"Connect over HTTPS; certificate verification is disabled" default:"${config_ssl}" negatable:""`
	URL      string        `help:"Full cluster URL; overrides host, port and ssl"`
	Retries  int           `help:"Retries on 429/502/503/504 responses" default:"${config_max_retries}"`
	Timeout  time.Duration `help:"Per-request response header timeout" default:"60s"`
}

// resolve fills unset address and credential flags from cfg. SSL and
// retries are taken as given since kong already defaults them from cfg.
func (f ConnectionFlags) resolve(cfg *config.Config) search.Config {
	oc := cfg.OpenSearch
	sc := search.Config{
		Host:       orString(f.Host, oc.Host),
		Port:       orInt(f.Port, oc.Port),
		User:       orString(f.User, oc.User),
		Password:   orString(f.Password, oc.Password),
		SSL:        f.SSL,
		URL:        f.URL,
		MaxRetries: f.Retries,
		Timeout:    f.Timeout,
	}
	return sc
}

func (f ConnectionFlags) client(cfg *config.Config) (*search.Client, search.Config, error) {
	sc := f.resolve(cfg)
	c, err := search.NewClient(sc)
	return c, sc, err
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
