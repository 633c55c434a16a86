package config

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*TodoConfig)
		wantErr bool
	}{
		{"defaults", func(*TodoConfig) {}, false},
		{"gorm ok", func(c *TodoConfig) { c.Store = "GORM" }, false},
		{"gorm no ds", func(c *TodoConfig) { c.Store = "gorm"; c.DataSource = " " }, true},
		{"bad store", func(c *TodoConfig) { c.Store = "mongo" }, true},
		{"default over max", func(c *TodoConfig) { c.DefaultPageSize = 50; c.MaxPageSize = 25 }, true},
	}
	for _, tc := range cases {
		c := Default()
		tc.mutate(c)
		err := c.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: err=%v wantErr=%v", tc.name, err, tc.wantErr)
		}
	}
}

func TestValidateFillsZeroValues(t *testing.T) {
	c := &TodoConfig{}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if c.Store != "memory" || c.MaxPageSize != 100 || c.DefaultPageSize != 10 || c.CacheKeyPrefix == "" || c.CacheTTL <= 0 {
		t.Fatalf("defaults not applied: %+v", c)
	}
}
