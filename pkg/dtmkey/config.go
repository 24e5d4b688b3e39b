package dtmkey

import (
	"github.com/agenthands/dtmkey/pkg/core"
)

type Config = core.Config
type IndexConfig = core.IndexConfig
type LimitsConfig = core.LimitsConfig
type LoggingConfig = core.LoggingConfig
