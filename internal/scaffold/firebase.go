package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/joho/godotenv"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const firebaseConfigFile = "firebase.js"

type firebaseField struct {
	Key      string // property name in the web config
	Env      string // suffix after VITE_FIREBASE_ / FIREBASE_
	Required bool
}

var firebaseFields = []firebaseField{
	{Key: "apiKey", Env: "API_KEY", Required: true},
	{Key: "authDomain", Env: "AUTH_DOMAIN"},
	{Key: "projectId", Env: "PROJECT_ID", Required: true},
	{Key: "storageBucket", Env: "STORAGE_BUCKET"},
	{Key: "messagingSenderId", Env: "MESSAGING_SENDER_ID"},
	{Key: "appId", Env: "APP_ID", Required: true},
	{Key: "measurementId", Env: "MEASUREMENT_ID"},
}

var firebaseEnvPrefixes = []string{"VITE_FIREBASE_", "FIREBASE_"}

type keyValue struct {
	Key   string
	Value string
}

type firebaseConfig struct {
	Source string
	Fields []keyValue
}

// loadFirebaseConfig reads a dotenv file and picks out the Firebase web
// config. Missing required keys are a *ValidationError.
func loadFirebaseConfig(path string) (*firebaseConfig, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, &ValidationError{
			Field:  "firebase env file",
			Value:  path,
			Reason: err.Error(),
		}
	}

	cfg := &firebaseConfig{Source: path}
	var missing []string
	for _, f := range firebaseFields {
		value := lookupFirebaseEnv(env, f.Env)
		if value == "" {
			if f.Required {
				missing = append(missing, firebaseEnvPrefixes[0]+f.Env)
			}
			continue
		}
		cfg.Fields = append(cfg.Fields, keyValue{Key: f.Key, Value: value})
	}
	if len(missing) > 0 {
		return nil, &ValidationError{
			Field:  "firebase env file",
			Value:  path,
			Reason: "missing " + strings.Join(missing, ", "),
		}
	}
	return cfg, nil
}

func lookupFirebaseEnv(env map[string]string, suffix string) string {
	for _, prefix := range firebaseEnvPrefixes {
		if v := strings.TrimSpace(env[prefix+suffix]); v != "" {
			return v
		}
	}
	return ""
}

func (c *firebaseConfig) render() (string, error) {
	tmpl, err := template.New(firebaseConfigFile+".tmpl").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFS, "templates/"+firebaseConfigFile+".tmpl")
	if err != nil {
		return "", fmt.Errorf("parsing firebase template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("rendering firebase config: %w", err)
	}
	return buf.String(), nil
}
