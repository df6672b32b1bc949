package config

import "github.com/BurntSushi/toml"

// LoadTOML reads an EngineConfig-shaped file from path, for deployments that
// prefer a config file over environment variables (the teacher registers the
// same library as its i18n bundle unmarshaler; here it deserializes the
// engine's own settings instead).
func LoadTOML(path string, dst any) error {
	_, err := toml.DecodeFile(path, dst)
	return err
}
