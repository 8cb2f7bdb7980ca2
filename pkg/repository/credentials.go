package repository

import (
	"net/url"
	"os"

	"github.com/jdx/go-netrc"

	"github.com/matzehuels/mvnfetch/pkg/errors"
)

// Credential is an HTTP basic-auth login.
type Credential struct {
	Username string
	Password string
}

// Credentials maps a repository host name to its login.
type Credentials map[string]Credential

// LoadNetrc reads logins for the hosts of repos from the .netrc file at
// path. A missing file yields empty credentials.
func LoadNetrc(path string, repos Set) (Credentials, error) {
	creds := Credentials{}
	if path == "" {
		return creds, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return creds, nil
	}

	n, err := netrc.Parse(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read netrc %s", path)
	}

	for _, base := range repos.Bases() {
		u, err := url.Parse(base)
		if err != nil {
			continue
		}
		host := u.Hostname()
		if _, done := creds[host]; done {
			continue
		}
		m := n.Machine(host)
		if m == nil {
			continue
		}
		if login := m.Get("login"); login != "" {
			creds[host] = Credential{Username: login, Password: m.Get("password")}
		}
	}
	return creds, nil
}
