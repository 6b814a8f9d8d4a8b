package zabbix

import (
	"strings"
	"testing"

	"github.com/evgkrsk/zabbix-review-export/internal/zabbixtest"
)

func TestConnect_ModernConvention(t *testing.T) {
	s := zabbixtest.New() // accepts "username"
	defer s.Close()

	c, err := Connect(s.URL, "review", "secret")
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	if c.auth != zabbixtest.Token {
		t.Errorf("auth = %q, want session token", c.auth)
	}

	logins := 0
	for _, m := range s.Calls {
		if m == "user.login" {
			logins++
		}
	}
	if logins != 1 {
		t.Errorf("user.login called %d times, want 1 (first convention should match)", logins)
	}
}

func TestConnect_LegacyFallback(t *testing.T) {
	s := zabbixtest.New()
	s.LoginParam = "user" // pre-5.4 server
	defer s.Close()

	c, err := Connect(s.URL, "review", "secret")
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	if c.auth != zabbixtest.Token {
		t.Errorf("auth = %q, want session token", c.auth)
	}

	logins := 0
	for _, m := range s.Calls {
		if m == "user.login" {
			logins++
		}
	}
	if logins != 2 {
		t.Errorf("user.login called %d times, want 2 (fallback after first failure)", logins)
	}
}

func TestConnect_AllConventionsFail(t *testing.T) {
	s := zabbixtest.New()
	s.LoginParam = "neither" // rejects every shape
	defer s.Close()

	_, err := Connect(s.URL, "review", "wrong")
	if err == nil {
		t.Fatal("Connect should fail when every login convention is rejected")
	}
	if !strings.Contains(err.Error(), "unable to authenticate") {
		t.Errorf("error %q should report the combined failure", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect("http://127.0.0.1:1", "review", "secret")
	if err == nil {
		t.Fatal("Connect to a closed port should fail")
	}
}
