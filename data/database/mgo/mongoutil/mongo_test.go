package mongoutil

import "testing"

func TestValidateAndSetDefaults(t *testing.T) {
	cfg := &Config{URI: "mongodb://localhost:27017", Database: "bot"}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if cfg.MaxPoolSize != defaultMaxPoolSize {
		t.Errorf("MaxPoolSize = %d, want %d", cfg.MaxPoolSize, defaultMaxPoolSize)
	}
	if cfg.MaxRetry != defaultMaxRetry {
		t.Errorf("MaxRetry = %d, want %d", cfg.MaxRetry, defaultMaxRetry)
	}
	if cfg.AuthSource != defaultAuthSource {
		t.Errorf("AuthSource = %q, want %q", cfg.AuthSource, defaultAuthSource)
	}
}

func TestValidateRequiresTarget(t *testing.T) {
	if err := (&Config{Database: "bot"}).ValidateAndSetDefaults(); err == nil {
		t.Error("missing uri/address must be rejected")
	}
	if err := (&Config{URI: "mongodb://localhost:27017"}).ValidateAndSetDefaults(); err == nil {
		t.Error("missing database must be rejected")
	}
}

func TestApplyConfigToOptions(t *testing.T) {
	cfg := &Config{
		Address:  []string{"db1:27017", "db2:27017"},
		Database: "bot",
		Username: "root",
		Password: "secret",
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	opts := applyConfigToOptions(cfg)
	if got := len(opts.Hosts); got != 2 {
		t.Errorf("hosts = %v", opts.Hosts)
	}
	if opts.MaxPoolSize == nil || *opts.MaxPoolSize != defaultMaxPoolSize {
		t.Errorf("max pool size not applied: %v", opts.MaxPoolSize)
	}
	if opts.Auth == nil || opts.Auth.Username != "root" || opts.Auth.AuthSource != defaultAuthSource {
		t.Errorf("auth not applied: %+v", opts.Auth)
	}
}
