package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"database": map[string]any{
			"autoMigrate": false,
			"postgres": map[string]any{
				"sslMode": "disable",
				"master": map[string]any{
					"userName": "user",
				},
			},
		},
		"email": map[string]any{
			"useTLS":          true,
			"verificationURL": "",
		},
		"secretKey": "",
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "DATABASE_POSTGRES_SSLMODE", want: "database.postgres.sslMode"},
		{envKey: "DATABASE_POSTGRES_MASTER_USERNAME", want: "database.postgres.master.userName"},
		{envKey: "DATABASE_AUTOMIGRATE", want: "database.autoMigrate"},
		{envKey: "EMAIL_USETLS", want: "email.useTLS"},
		{envKey: "EMAIL_VERIFICATIONURL", want: "email.verificationURL"},
		{envKey: "SECRETKEY", want: "secretKey"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
