package config

// CipherSection holds encryption defaults.
type CipherSection struct {
	// GridSize is the odd grid size for the first round. 0 picks the minimal size.
	GridSize int `yaml:"grid_size"`
	Rounds   int `yaml:"rounds"`
	// PaddingSeed is a hex seed for reproducible padding. Empty uses crypto/rand.
	PaddingSeed string `yaml:"padding_seed,omitempty"`
}

// ServerSection configures the QUIC service.
type ServerSection struct {
	ListenAddr string `yaml:"listen_addr"`
	MaxRounds  int    `yaml:"max_rounds"`
	// IdleTimeout uses Go duration format: "30s", "1m".
	IdleTimeout string `yaml:"idle_timeout,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

// EnvelopeSection configures sealed output.
type EnvelopeSection struct {
	Compression string         `yaml:"compression"`
	Erasure     ErasureSection `yaml:"erasure"`
}

// ErasureSection sets the shard layout used by the shard command.
type ErasureSection struct {
	DataShards   int `yaml:"data_shards"`
	ParityShards int `yaml:"parity_shards"`
}

// FileConfig is the layout of a diamond YAML configuration file.
type FileConfig struct {
	Version  int             `yaml:"version,omitempty"`
	Cipher   CipherSection   `yaml:"cipher"`
	Server   ServerSection   `yaml:"server"`
	Envelope EnvelopeSection `yaml:"envelope"`
}

// Default returns the configuration used when no file is given.
func Default() FileConfig {
	return FileConfig{
		Version: 1,
		Cipher: CipherSection{
			GridSize: 0,
			Rounds:   1,
		},
		Server: ServerSection{
			ListenAddr:  "[::1]:4790",
			MaxRounds:   16,
			IdleTimeout: "30s",
			LogLevel:    "info",
		},
		Envelope: EnvelopeSection{
			Compression: "fast",
			Erasure: ErasureSection{
				DataShards:   4,
				ParityShards: 2,
			},
		},
	}
}
