package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Backend struct {
		BaseURL        string   `json:"address"`
		APIKey         string   `json:"api_key"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"backend,omitempty"`

	Storage struct {
		QueueDBPath string `json:"queue_db_path"`
		SpoolDir    string `json:"spool_dir"`
	} `json:"storage,omitempty"`

	Pipeline struct {
		MaxImageEdge int `json:"max_image_edge"`
		JPEGQuality  int `json:"jpeg_quality"`
	} `json:"pipeline,omitempty"`

	Workers struct {
		SyncInterval   Duration `json:"sync_interval"`
		ProbeInterval  Duration `json:"probe_interval"`
		StatusInterval Duration `json:"status_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Backend: Backend{
			BaseURL:        jsonCfg.Backend.BaseURL,
			APIKey:         jsonCfg.Backend.APIKey,
			RequestTimeout: time.Duration(jsonCfg.Backend.RequestTimeout),
		},
		Storage: Storage{
			QueueDBPath: jsonCfg.Storage.QueueDBPath,
			SpoolDir:    jsonCfg.Storage.SpoolDir,
		},
		Pipeline: Pipeline{
			MaxImageEdge: jsonCfg.Pipeline.MaxImageEdge,
			JPEGQuality:  jsonCfg.Pipeline.JPEGQuality,
		},
		Workers: Workers{
			SyncInterval:   time.Duration(jsonCfg.Workers.SyncInterval),
			ProbeInterval:  time.Duration(jsonCfg.Workers.ProbeInterval),
			StatusInterval: time.Duration(jsonCfg.Workers.StatusInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
