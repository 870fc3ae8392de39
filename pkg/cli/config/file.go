package config

import (
	"bytes"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is the optional TOML configuration file. Command line flags and
// environment variables take precedence over it.
//
//	[aws]
//	region = "us-west-2"
//	profile = "dev"
//
//	[download]
//	language = "Python36"
//	destination = "./generated"
//	poll_interval = "5s"
//	poll_max_attempts = 60
type File struct {
	AWS      FileAWS      `toml:"aws"`
	Download FileDownload `toml:"download"`
}

// FileAWS is the [aws] table
type FileAWS struct {
	Region   string `toml:"region"`
	Profile  string `toml:"profile"`
	Endpoint string `toml:"endpoint"`
}

// FileDownload is the [download] table
type FileDownload struct {
	Language        string `toml:"language"`
	Destination     string `toml:"destination"`
	TempDir         string `toml:"temp_dir"`
	PollInterval    string `toml:"poll_interval"`
	PollMaxAttempts int    `toml:"poll_max_attempts"`
}

func (d FileDownload) pollInterval() (time.Duration, error) {
	v, err := time.ParseDuration(d.PollInterval)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid poll_interval in config file", goerr.V("value", d.PollInterval))
	}
	return v, nil
}

// LoadFile reads and decodes a TOML config file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return &f, nil
}
