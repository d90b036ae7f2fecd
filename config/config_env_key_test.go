package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"blob": map[string]any{
			"bucketUrl":    "",
			"signedUrlTtl": "15m",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"firestore": map[string]any{
			"credentialsPath": "",
		},
		"generator": map[string]any{
			"templatesDir": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "BLOB_BUCKETURL", want: "blob.bucketUrl"},
		{envKey: "BLOB_SIGNEDURLTTL", want: "blob.signedUrlTtl"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "FIRESTORE_CREDENTIALSPATH", want: "firestore.credentialsPath"},
		{envKey: "GENERATOR_TEMPLATESDIR", want: "generator.templatesDir"},
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
