package storage

import (
	"net/url"

	"github.com/pkg/errors"
)

type Config struct {
	Scheme string
	Path   string
}

// NewConfigFromString parses a storage URI; `file:///var/lib/agora/db` opens
// an on-disk database, `memory://` an in-memory one.
func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid storage uri")
	}

	switch u.Scheme {
	case "file":
		if len(u.Path) < 1 {
			return nil, errors.New("storage uri has empty path")
		}
		return &Config{Scheme: u.Scheme, Path: u.Path}, nil
	case "memory":
		return &Config{Scheme: u.Scheme}, nil
	}

	return nil, errors.Errorf("unsupported storage scheme: '%s'", u.Scheme)
}

func (c *Config) String() string {
	u := url.URL{Scheme: c.Scheme, Path: c.Path}
	return u.String()
}
