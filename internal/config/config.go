package config

type Config struct {
	Import     ImportConf     `json:"import"`
	Statistics StatisticsConf `json:"statistics"`
}

type ImportConf struct {
	MaxFileSizeMB int `json:"max_file_size_mb"` // upload cap, default 10
	PreviewRows   int `json:"preview_rows"`     // rows echoed back after an import, default 5
}

type StatisticsConf struct {
	DefaultLimit int `json:"default_limit"` // page size when the query omits limit, default 10
	MaxLimit     int `json:"max_limit"`     // hard page size cap, default 100
}

// ApplyDefaults fills zero values so an empty app section still works.
func (c *Config) ApplyDefaults() {
	if c.Import.MaxFileSizeMB <= 0 {
		c.Import.MaxFileSizeMB = 10
	}
	if c.Import.PreviewRows <= 0 {
		c.Import.PreviewRows = 5
	}
	if c.Statistics.DefaultLimit <= 0 {
		c.Statistics.DefaultLimit = 10
	}
	if c.Statistics.MaxLimit <= 0 {
		c.Statistics.MaxLimit = 100
	}
}
