package mailer

import "testing"

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Errorf("empty config must be disabled")
	}
	if (Config{Host: "smtp.example.com"}).Enabled() {
		t.Errorf("host without sender must be disabled")
	}
	if !(Config{Host: "smtp.example.com", Sender: "reports@example.com"}).Enabled() {
		t.Errorf("host and sender must enable the mailer")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Host: "smtp.example.com"}
	cfg.SetDefaults()
	if cfg.Port != 587 {
		t.Errorf("port = %d, want submission default", cfg.Port)
	}
}
