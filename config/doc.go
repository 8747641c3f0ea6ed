// Package config loads and validates seiskit configuration.
//
// It uses Viper to read a YAML config file and layer environment variables
// on top, with godotenv picking up a local .env file when present. The
// StreamConfig section declares the retention bound, the continuity policy
// and the transform pipeline of a realtime stream, and can build a fully
// registered stream directly:
//
//	var cfg config.StreamConfig
//	err := config.Load("seiskit", &cfg)
//	cfg.ApplyDefaults()
//	stream, err := cfg.BuildStream()
package config
