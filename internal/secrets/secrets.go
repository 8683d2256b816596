// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a .env file and the process
// environment. Environment variables take precedence over the file so
// deployments can override without editing it.
//
// Supported keys: OPENAI_API_KEY, DBPIA_API_KEY, GIPHY_API_KEY.
package secrets

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env var names for each credential.
const (
	OpenAIKeyVar = "OPENAI_API_KEY"
	DBpiaKeyVar  = "DBPIA_API_KEY"
	GiphyKeyVar  = "GIPHY_API_KEY"
)

// Secrets holds the resolved credentials. Any field may be empty; each
// consumer decides whether its key is required.
type Secrets struct {
	OpenAIAPIKey string
	DBpiaAPIKey  string
	GiphyAPIKey  string
}

// Load reads envFile (".env" by convention) and resolves the known
// keys, trimming surrounding whitespace. A missing file is not an
// error; an unreadable or malformed one is. Values already present in
// the environment win over the file.
func Load(envFile string) (Secrets, error) {
	fileVals := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return Secrets{}, fmt.Errorf("reading env file %s: %w", envFile, err)
			}
		} else {
			fileVals = vals
		}
	}

	get := func(name string) string {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
		return strings.TrimSpace(fileVals[name])
	}

	return Secrets{
		OpenAIAPIKey: get(OpenAIKeyVar),
		DBpiaAPIKey:  get(DBpiaKeyVar),
		GiphyAPIKey:  get(GiphyKeyVar),
	}, nil
}

// RequireOpenAI returns the OpenAI key or an error naming the variable.
func (s Secrets) RequireOpenAI() (string, error) {
	if s.OpenAIAPIKey == "" {
		return "", fmt.Errorf("%s is not set", OpenAIKeyVar)
	}
	return s.OpenAIAPIKey, nil
}

// RequireDBpia returns the DBpia key or an error naming the variable.
func (s Secrets) RequireDBpia() (string, error) {
	if s.DBpiaAPIKey == "" {
		return "", fmt.Errorf("%s is not set", DBpiaKeyVar)
	}
	return s.DBpiaAPIKey, nil
}
