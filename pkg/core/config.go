package core

type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

type IndexConfig struct {
	Dir  string `yaml:"dir"`
	Sync bool   `yaml:"sync"` // fsync every unbatched write
}

// LimitsConfig bounds index entries. Zero means unlimited.
type LimitsConfig struct {
	MaxLabelLen  int `yaml:"max_label_len"`
	MaxTags      int `yaml:"max_tags"`
	MaxTagKeyLen int `yaml:"max_tag_key_len"`
	MaxTagValLen int `yaml:"max_tag_val_len"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}
