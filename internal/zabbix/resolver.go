package zabbix

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// loginStrategy is one user.login parameter convention. The parameter
// names were renamed server-side in 5.4, so two incompatible shapes are
// in circulation.
type loginStrategy struct {
	name   string
	params func(user, password string) map[string]interface{}
}

var loginStrategies = []loginStrategy{
	{"username/password (Zabbix >= 5.4)", func(u, p string) map[string]interface{} {
		return map[string]interface{}{"username": u, "password": p}
	}},
	{"user/password (Zabbix < 5.4)", func(u, p string) map[string]interface{} {
		return map[string]interface{}{"user": u, "password": p}
	}},
}

// Connect authenticates against the frontend at rawURL, trying each login
// convention in order and keeping the first that succeeds. Every failed
// attempt is logged at debug level; if all fail, one combined error is
// returned.
func Connect(rawURL, username, password string) (*Client, error) {
	c := NewClient(rawURL)

	var attempts []error
	for _, s := range loginStrategies {
		logrus.Debugf("Try login with %s...", s.name)
		raw, err := c.Call("user.login", s.params(username, password))
		if err != nil {
			logrus.Debugf("Login with %s failed: %v", s.name, err)
			attempts = append(attempts, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		var token string
		if err := json.Unmarshal(raw, &token); err != nil {
			attempts = append(attempts, fmt.Errorf("%s: parsing session token: %w", s.name, err))
			continue
		}
		c.auth = token

		if v, err := c.Version(); err == nil {
			logrus.Debugf("Connected to Zabbix API %s", v)
		}
		return c, nil
	}

	return nil, fmt.Errorf("unable to authenticate with any known login convention: %w", errors.Join(attempts...))
}
