package mqtt

import "testing"

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	if cfg.ClientID != "homevolt" {
		t.Errorf("client id = %q", cfg.ClientID)
	}
	if cfg.Topic != "homevolt/plan" {
		t.Errorf("topic = %q", cfg.Topic)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Errorf("disabled config must validate: %v", err)
	}
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Errorf("enabled config without broker must fail")
	}
	if err := (Config{Enabled: true, Broker: "tcp://localhost:1883"}).Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
